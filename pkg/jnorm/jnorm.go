// Package jnorm normalizes Japanese and mixed-script text for tokenization,
// search indexing and lemmatization.
//
// The text transforms live in package normalize and are pure functions;
// TextNormalizer bundles them with a configured pipeline and a lemmatizer
// backed by a lexical knowledge base.
package jnorm

import (
	"context"
	"errors"

	"github.com/cognicore/jnorm/internal/logging"
	"github.com/cognicore/jnorm/pkg/jnorm/lexicon"
	"github.com/cognicore/jnorm/pkg/jnorm/normalize"
	"github.com/cognicore/jnorm/pkg/jnorm/store"
	"github.com/cognicore/jnorm/pkg/jnorm/store/memstore"
)

// TextNormalizer is the main normalization facade
type TextNormalizer struct {
	pipeline   *normalize.Pipeline
	lemmatizer *lexicon.Lemmatizer
	store      store.Store
	logger     logging.Logger
}

// Options configures a TextNormalizer. Zero values select the canonical
// pipeline, a lemmatizer over an empty in-memory store and a no-op logger.
type Options struct {
	Pipeline   *normalize.Pipeline
	Lemmatizer *lexicon.Lemmatizer
	// Store is closed by Close when set.
	Store  store.Store
	Logger logging.Logger
}

// New creates a TextNormalizer with the given dependencies
func New(opts Options) (*TextNormalizer, error) {
	t := &TextNormalizer{
		pipeline:   opts.Pipeline,
		lemmatizer: opts.Lemmatizer,
		store:      opts.Store,
		logger:     opts.Logger,
	}
	if t.logger == nil {
		t.logger = logging.Nop()
	}
	if t.pipeline == nil {
		p, err := normalize.NewPipeline()
		if err != nil {
			return nil, err
		}
		t.pipeline = p
	}
	if t.lemmatizer == nil {
		if t.store == nil {
			t.store = memstore.New()
		}
		lm, err := lexicon.NewLemmatizer(lexicon.NewStoreBase(t.store), lexicon.WithLogger(t.logger))
		if err != nil {
			return nil, err
		}
		t.lemmatizer = lm
	}
	return t, nil
}

// Close releases the store and the logger
func (t *TextNormalizer) Close() error {
	var errs []error
	if t.store != nil {
		errs = append(errs, t.store.Close())
	}
	errs = append(errs, t.logger.Close())
	return errors.Join(errs...)
}

// Normalize applies NFKC, digit collapsing and lower-casing.
func (t *TextNormalizer) Normalize(text string) string { return normalize.Normalize(text) }

// NormalizeNeologd applies the NEologd normalization rules.
func (t *TextNormalizer) NormalizeNeologd(text string) string {
	return normalize.NormalizeNeologd(text)
}

// NormalizeUnicode applies NFKC.
func (t *TextNormalizer) NormalizeUnicode(text string) string {
	return normalize.NormalizeUnicode(text)
}

// NormalizeNumber replaces every run of ASCII digits with "0".
func (t *TextNormalizer) NormalizeNumber(text string) string {
	return normalize.NormalizeNumber(text)
}

// LowerText applies full Unicode lower-casing.
func (t *TextNormalizer) LowerText(text string) string { return normalize.LowerText(text) }

// RemoveExtraSpaces collapses spaces and drops those next to Japanese text.
func (t *TextNormalizer) RemoveExtraSpaces(text string) string {
	return normalize.RemoveExtraSpaces(text)
}

// Process runs text through the configured pipeline.
func (t *TextNormalizer) Process(text string) string { return t.pipeline.Process(text) }

// Pipeline returns the step names of the configured pipeline.
func (t *TextNormalizer) Pipeline() []string { return t.pipeline.Names() }

// LemmatizeTerm returns the dictionary form of term. pos may be
// lexicon.None to let the knowledge base decide.
func (t *TextNormalizer) LemmatizeTerm(ctx context.Context, term string, pos lexicon.POS) (string, error) {
	return t.lemmatizer.LemmatizeTerm(ctx, term, pos)
}
