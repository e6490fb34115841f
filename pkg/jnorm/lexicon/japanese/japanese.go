// Package japanese provides a lexicon.KnowledgeBase for Japanese built on the
// kagome morphological analyzer and its IPA dictionary.
package japanese

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/cognicore/jnorm/pkg/jnorm/lexicon"
)

// IPA part-of-speech tags mapped to WordNet codes.
var posTags = map[string]lexicon.POS{
	"名詞":  lexicon.Noun,
	"動詞":  lexicon.Verb,
	"形容詞": lexicon.Adjective,
	"連体詞": lexicon.AdjectiveSatellite,
	"副詞":  lexicon.Adverb,
}

// KnowledgeBase answers lookups with kagome. A term is recognised when it
// analyses to one known content morpheme, optionally followed by an
// inflectional tail (auxiliary verbs, conjunctive particles, dependent
// verbs), so 食べた resolves to 食べる.
type KnowledgeBase struct {
	tok *tokenizer.Tokenizer
}

// New loads the IPA dictionary.
func New() (*KnowledgeBase, error) {
	tok, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("kagome tokenizer: %w", err)
	}
	return &KnowledgeBase{tok: tok}, nil
}

type analysis struct {
	lemma    string
	pos      lexicon.POS
	features string
}

func (kb *KnowledgeBase) analyse(word string) (analysis, bool) {
	tokens := kb.tok.Tokenize(word)
	if len(tokens) == 0 {
		return analysis{}, false
	}

	head := tokens[0]
	if head.Class != tokenizer.KNOWN {
		return analysis{}, false
	}
	tags := head.POS()
	if len(tags) == 0 {
		return analysis{}, false
	}
	pos, ok := posTags[tags[0]]
	if !ok {
		return analysis{}, false
	}
	for _, t := range tokens[1:] {
		if !isInflectionalTail(t) {
			return analysis{}, false
		}
	}

	lemma, ok := head.BaseForm()
	if !ok || lemma == "" || lemma == "*" {
		lemma = head.Surface
	}
	return analysis{lemma: lemma, pos: pos, features: joinTags(tags)}, true
}

func isInflectionalTail(t tokenizer.Token) bool {
	if t.Class != tokenizer.KNOWN {
		return false
	}
	tags := t.POS()
	if len(tags) == 0 {
		return false
	}
	switch tags[0] {
	case "助動詞":
		return true
	case "助詞":
		return len(tags) > 1 && tags[1] == "接続助詞"
	case "動詞", "形容詞":
		return len(tags) > 1 && tags[1] == "非自立"
	}
	return false
}

func joinTags(tags []string) string {
	kept := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "*" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, ",")
}

// LookupSenses returns at most one sense: the dictionary form of word and its
// part of speech.
func (kb *KnowledgeBase) LookupSenses(ctx context.Context, word string) ([]lexicon.Sense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, ok := kb.analyse(word)
	if !ok {
		return nil, nil
	}
	return []lexicon.Sense{{
		ID:    "ipa:" + a.lemma + ":" + string(a.pos),
		Lemma: a.lemma,
		POS:   a.pos,
		Gloss: a.features,
	}}, nil
}

// Lemmatize returns the dictionary form of word when its part of speech
// agrees with pos (any part of speech when pos is None).
func (kb *KnowledgeBase) Lemmatize(ctx context.Context, word string, pos lexicon.POS) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	a, ok := kb.analyse(word)
	if !ok {
		return word, nil
	}
	if pos != lexicon.None && a.pos.Base() != pos.Base() {
		return word, nil
	}
	return a.lemma, nil
}
