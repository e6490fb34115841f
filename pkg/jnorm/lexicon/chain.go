package lexicon

import (
	"context"
	"fmt"
)

type chain []KnowledgeBase

// Chain consults bases in order. LookupSenses returns the first non-empty
// answer; Lemmatize returns the first result that differs from the word.
func Chain(bases ...KnowledgeBase) KnowledgeBase {
	out := make(chain, 0, len(bases))
	for _, kb := range bases {
		if kb != nil {
			out = append(out, kb)
		}
	}
	return out
}

func (c chain) LookupSenses(ctx context.Context, word string) ([]Sense, error) {
	for i, kb := range c {
		senses, err := kb.LookupSenses(ctx, word)
		if err != nil {
			return nil, fmt.Errorf("chain[%d]: %w", i, err)
		}
		if len(senses) > 0 {
			return senses, nil
		}
	}
	return nil, nil
}

func (c chain) Lemmatize(ctx context.Context, word string, pos POS) (string, error) {
	for i, kb := range c {
		lemma, err := kb.Lemmatize(ctx, word, pos)
		if err != nil {
			return "", fmt.Errorf("chain[%d]: %w", i, err)
		}
		if lemma != word {
			return lemma, nil
		}
	}
	return word, nil
}
