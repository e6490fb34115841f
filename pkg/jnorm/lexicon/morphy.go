package lexicon

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
	"github.com/cognicore/jnorm/pkg/jnorm/store"
)

type substitution struct {
	suffix, replacement string
}

// Detachment rules per part of speech, tried in order.
var substitutions = map[POS][]substitution{
	Noun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	Verb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	Adjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
	Adverb: nil,
}

// StoreBase is a KnowledgeBase backed by a store.Store. Base forms are found
// by checking the irregular-form list and then detaching inflectional
// suffixes until a form known to the store turns up.
type StoreBase struct {
	store store.Store
}

// NewStoreBase creates a knowledge base over st.
func NewStoreBase(st store.Store) *StoreBase {
	return &StoreBase{store: st}
}

// LookupSenses lower-cases word and collects the senses of its base forms for
// every part of speech, nouns first.
func (b *StoreBase) LookupSenses(ctx context.Context, word string) ([]Sense, error) {
	word = strings.ToLower(word)

	var out []Sense
	for _, pos := range lookupOrder {
		forms, err := b.Morphy(ctx, word, pos)
		if err != nil {
			return nil, err
		}
		for _, form := range forms {
			senses, err := b.store.Senses(ctx, form, storeCodes(pos)...)
			if err != nil {
				return nil, fmt.Errorf("senses of %q: %w", form, err)
			}
			for _, s := range senses {
				out = append(out, Sense{ID: s.ID, Lemma: s.Lemma, POS: POS(s.POS), Gloss: s.Gloss})
			}
		}
	}
	return out, nil
}

// Lemmatize returns the shortest base form of word for pos, preferring the
// first on ties. None is treated as Noun. The word is returned unchanged when
// no base form is known.
func (b *StoreBase) Lemmatize(ctx context.Context, word string, pos POS) (string, error) {
	if pos == None {
		pos = Noun
	}
	forms, err := b.Morphy(ctx, word, pos)
	if err != nil {
		return "", err
	}
	if len(forms) == 0 {
		return word, nil
	}
	best := forms[0]
	for _, f := range forms[1:] {
		if len(f) < len(best) {
			best = f
		}
	}
	return best, nil
}

// Morphy returns the base forms of form for pos that the store knows about.
func (b *StoreBase) Morphy(ctx context.Context, form string, pos POS) ([]string, error) {
	rules, ok := substitutions[pos.Base()]
	if !ok {
		return nil, fmt.Errorf("morphy %q: %w", pos, internalerr.ErrUnknownPOS)
	}

	exceptions, err := b.store.Exceptions(ctx, form, string(pos.Base()))
	if err != nil {
		return nil, fmt.Errorf("exceptions of %q: %w", form, err)
	}
	if len(exceptions) > 0 {
		return b.known(ctx, append([]string{form}, exceptions...), pos)
	}

	forms := applyRules([]string{form}, rules)
	found, err := b.known(ctx, append([]string{form}, forms...), pos)
	if err != nil || len(found) > 0 {
		return found, err
	}

	for len(forms) > 0 {
		forms = applyRules(forms, rules)
		found, err := b.known(ctx, forms, pos)
		if err != nil || len(found) > 0 {
			return found, err
		}
	}
	return nil, nil
}

// known keeps the forms that have at least one sense for pos, without
// duplicates and in input order.
func (b *StoreBase) known(ctx context.Context, forms []string, pos POS) ([]string, error) {
	var out []string
	seen := make(map[string]struct{}, len(forms))
	for _, f := range forms {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}

		senses, err := b.store.Senses(ctx, f, storeCodes(pos)...)
		if err != nil {
			return nil, fmt.Errorf("senses of %q: %w", f, err)
		}
		if len(senses) > 0 {
			out = append(out, f)
		}
	}
	return out, nil
}

func applyRules(forms []string, rules []substitution) []string {
	var out []string
	for _, f := range forms {
		for _, r := range rules {
			if strings.HasSuffix(f, r.suffix) {
				out = append(out, f[:len(f)-len(r.suffix)]+r.replacement)
			}
		}
	}
	return out
}

// storeCodes lists the stored POS codes that answer for pos. Adjective
// lookups include satellites.
func storeCodes(pos POS) []string {
	if pos.Base() == Adjective {
		return []string{string(Adjective), string(AdjectiveSatellite)}
	}
	return []string{string(pos)}
}
