package lexicon

import (
	"context"
	"fmt"

	"github.com/kljensen/snowball"

	"github.com/cognicore/jnorm/internal/logging"
	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
)

// Lemmatizer reduces terms to dictionary forms using an injected
// KnowledgeBase. It is safe for concurrent use when the knowledge base is.
type Lemmatizer struct {
	kb           KnowledgeBase
	logger       logging.Logger
	stemLanguage string
}

// Option configures a Lemmatizer.
type Option func(*Lemmatizer)

// WithLogger sets the logger used for debug output.
func WithLogger(logger logging.Logger) Option {
	return func(lm *Lemmatizer) {
		if logger != nil {
			lm.logger = logger
		}
	}
}

// WithStemLanguage makes terms without any sense fall back to the snowball
// stemmer for language instead of being returned unchanged.
func WithStemLanguage(language string) Option {
	return func(lm *Lemmatizer) {
		lm.stemLanguage = language
	}
}

// NewLemmatizer creates a lemmatizer over kb.
func NewLemmatizer(kb KnowledgeBase, opts ...Option) (*Lemmatizer, error) {
	if kb == nil {
		return nil, fmt.Errorf("lemmatizer: nil knowledge base: %w", internalerr.ErrStoreUnavailable)
	}

	lm := &Lemmatizer{kb: kb, logger: logging.Nop()}
	for _, opt := range opts {
		opt(lm)
	}

	if lm.stemLanguage != "" {
		if _, err := snowball.Stem("running", lm.stemLanguage, false); err != nil {
			return nil, fmt.Errorf("stem language %q: %v: %w", lm.stemLanguage, err, internalerr.ErrInvalidConfig)
		}
	}
	return lm, nil
}

// LemmatizeTerm returns the base form of term. When pos is None the part of
// speech of the term's first sense is used (satellites count as adjectives);
// a term with no senses comes back unchanged, or stemmed when a stem
// language is configured.
func (lm *Lemmatizer) LemmatizeTerm(ctx context.Context, term string, pos POS) (string, error) {
	if pos == None {
		senses, err := lm.kb.LookupSenses(ctx, term)
		if err != nil {
			return "", fmt.Errorf("lookup senses of %q: %w", term, err)
		}
		if len(senses) == 0 {
			lm.logger.Debug("no senses", "term", term)
			return lm.fallback(term), nil
		}
		pos = senses[0].POS.Base()
	}

	lemma, err := lm.kb.Lemmatize(ctx, term, pos)
	if err != nil {
		return "", fmt.Errorf("lemmatize %q as %s: %w", term, pos, err)
	}
	lm.logger.Debug("lemmatized", "term", term, "pos", string(pos), "lemma", lemma)
	return lemma, nil
}

func (lm *Lemmatizer) fallback(term string) string {
	if lm.stemLanguage == "" {
		return term
	}
	stem, err := snowball.Stem(term, lm.stemLanguage, false)
	if err != nil || stem == "" {
		return term
	}
	return stem
}
