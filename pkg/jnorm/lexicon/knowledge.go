// Package lexicon resolves words to their dictionary forms.
//
// A KnowledgeBase answers two questions about a word: which senses it has,
// and what its base form is for a given part of speech. StoreBase answers them
// from a store.Store using WordNet-style morphological analysis, the japanese
// subpackage answers them with a morphological analyzer, and Chain combines
// several bases. Lemmatizer sits in front of a KnowledgeBase and picks the
// part of speech when the caller does not supply one.
package lexicon

import "context"

// KnowledgeBase is a lexical resource that knows word senses and base forms.
type KnowledgeBase interface {
	// LookupSenses returns the senses of word, most common first.
	LookupSenses(ctx context.Context, word string) ([]Sense, error)
	// Lemmatize returns the base form of word for pos, or word itself when
	// none is known.
	Lemmatize(ctx context.Context, word string, pos POS) (string, error)
}

// Sense is one meaning of a word.
type Sense struct {
	ID    string
	Lemma string
	POS   POS
	Gloss string
}
