package lexicon

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
)

// fakeKB records the part of speech it was asked to lemmatize with.
type fakeKB struct {
	senses    []Sense
	lookupErr error
	lemmaErr  error
	gotPOS    POS
	calls     int
}

func (f *fakeKB) LookupSenses(ctx context.Context, word string) ([]Sense, error) {
	return f.senses, f.lookupErr
}

func (f *fakeKB) Lemmatize(ctx context.Context, word string, pos POS) (string, error) {
	f.calls++
	f.gotPOS = pos
	if f.lemmaErr != nil {
		return "", f.lemmaErr
	}
	return "lemma:" + word, nil
}

func TestLemmatizeTermPicksFirstSense(t *testing.T) {
	tests := []struct {
		name   string
		senses []Sense
		want   POS
	}{
		{"verb", []Sense{{POS: Verb}, {POS: Noun}}, Verb},
		{"satellite collapses", []Sense{{POS: AdjectiveSatellite}}, Adjective},
		{"adverb", []Sense{{POS: Adverb}}, Adverb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := &fakeKB{senses: tt.senses}
			lm, err := NewLemmatizer(kb)
			if err != nil {
				t.Fatalf("NewLemmatizer: %v", err)
			}
			got, err := lm.LemmatizeTerm(context.Background(), "word", None)
			if err != nil {
				t.Fatalf("LemmatizeTerm: %v", err)
			}
			if got != "lemma:word" {
				t.Errorf("got %q", got)
			}
			if kb.gotPOS != tt.want {
				t.Errorf("Lemmatize called with %s, want %s", kb.gotPOS, tt.want)
			}
		})
	}
}

func TestLemmatizeTermExplicitPOS(t *testing.T) {
	kb := &fakeKB{senses: []Sense{{POS: Noun}}}
	lm, _ := NewLemmatizer(kb)

	if _, err := lm.LemmatizeTerm(context.Background(), "word", AdjectiveSatellite); err != nil {
		t.Fatalf("LemmatizeTerm: %v", err)
	}
	if kb.gotPOS != AdjectiveSatellite {
		t.Errorf("explicit pos should pass through unchanged, got %s", kb.gotPOS)
	}
}

func TestLemmatizeTermNoSenses(t *testing.T) {
	kb := &fakeKB{}
	lm, _ := NewLemmatizer(kb)

	got, err := lm.LemmatizeTerm(context.Background(), "xyzxyz123", None)
	if err != nil {
		t.Fatalf("LemmatizeTerm: %v", err)
	}
	if got != "xyzxyz123" {
		t.Errorf("got %q, want input unchanged", got)
	}
	if kb.calls != 0 {
		t.Errorf("Lemmatize should not be called without senses")
	}
}

func TestLemmatizeTermPropagatesErrors(t *testing.T) {
	ctx := context.Background()

	lm, _ := NewLemmatizer(&fakeKB{lookupErr: internalerr.ErrStoreUnavailable})
	if _, err := lm.LemmatizeTerm(ctx, "dogs", None); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("lookup error: got %v", err)
	}

	errMorphy := errors.New("morphy table corrupt")
	lm, _ = NewLemmatizer(&fakeKB{lemmaErr: errMorphy})
	if _, err := lm.LemmatizeTerm(ctx, "dogs", Noun); !errors.Is(err, errMorphy) {
		t.Errorf("lemmatize error: got %v", err)
	}
}

func TestNewLemmatizerNilKB(t *testing.T) {
	if _, err := NewLemmatizer(nil); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestLemmatizerWithStoreBase(t *testing.T) {
	lm, err := NewLemmatizer(NewStoreBase(seededStore(t)))
	if err != nil {
		t.Fatalf("NewLemmatizer: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		term string
		want string
	}{
		{"ran", "run"},
		{"leaves", "leaf"},
		{"greater", "great"},
		{"churches", "church"},
		{"xyzxyz123", "xyzxyz123"},
		{"jumping", "jumping"},
	}
	for _, tt := range tests {
		got, err := lm.LemmatizeTerm(ctx, tt.term, None)
		if err != nil {
			t.Fatalf("LemmatizeTerm(%q): %v", tt.term, err)
		}
		if got != tt.want {
			t.Errorf("LemmatizeTerm(%q) = %q, want %q", tt.term, got, tt.want)
		}
	}
}

func TestLemmatizerStemFallback(t *testing.T) {
	lm, err := NewLemmatizer(NewStoreBase(seededStore(t)), WithStemLanguage("english"))
	if err != nil {
		t.Fatalf("NewLemmatizer: %v", err)
	}
	ctx := context.Background()

	got, err := lm.LemmatizeTerm(ctx, "jumping", None)
	if err != nil {
		t.Fatalf("LemmatizeTerm: %v", err)
	}
	if got != "jump" {
		t.Errorf("stem fallback = %q, want jump", got)
	}

	// Known terms still go through the knowledge base
	if got, _ := lm.LemmatizeTerm(ctx, "ran", None); got != "run" {
		t.Errorf("LemmatizeTerm(ran) = %q, want run", got)
	}
}

func TestWithStemLanguageUnknown(t *testing.T) {
	_, err := NewLemmatizer(&fakeKB{}, WithStemLanguage("klingon"))
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
