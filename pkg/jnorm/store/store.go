package store

import "context"

// Store persists the lexical knowledge used for lemmatization:
// word senses and irregular inflections.
type Store interface {
	Close() error

	// Senses
	UpsertSense(ctx context.Context, s Sense) error
	// Senses returns the senses of lemma whose part of speech is one of
	// pos (all parts of speech when pos is empty), ordered by Rank then ID.
	Senses(ctx context.Context, lemma string, pos ...string) ([]Sense, error)

	// Irregular forms
	UpsertException(ctx context.Context, e Exception) error
	// Exceptions returns the lemmas listed for an inflected form.
	Exceptions(ctx context.Context, form, pos string) ([]string, error)

	Stats(ctx context.Context) (Stats, error)
}

// Sense is one meaning of a lemma. POS uses the single-letter WordNet
// codes: n, v, a, s (adjective satellite) and r.
type Sense struct {
	ID    string
	Lemma string
	POS   string
	Rank  int // lower ranks are listed first
	Gloss string
}

// Exception maps an irregular inflected form to a lemma, e.g. "ran" → "run".
type Exception struct {
	Form  string
	POS   string
	Lemma string
}

// Stats holds counts of stored records.
type Stats struct {
	Senses     int64
	Lemmas     int64
	Exceptions int64
}
