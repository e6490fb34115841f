package lexicon

import (
	"fmt"
	"strings"

	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
)

// POS is a WordNet part-of-speech code.
type POS string

const (
	None               POS = ""
	Noun               POS = "n"
	Verb               POS = "v"
	Adjective          POS = "a"
	AdjectiveSatellite POS = "s"
	Adverb             POS = "r"
)

// lookupOrder is the order in which parts of speech are tried when a word is
// looked up without one.
var lookupOrder = []POS{Noun, Verb, Adjective, Adverb}

// ParsePOS accepts single-letter codes and long names, case-insensitively.
// The empty string parses to None.
func ParsePOS(s string) (POS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return None, nil
	case "n", "noun":
		return Noun, nil
	case "v", "verb":
		return Verb, nil
	case "a", "adj", "adjective":
		return Adjective, nil
	case "s", "satellite", "adjective_satellite":
		return AdjectiveSatellite, nil
	case "r", "adv", "adverb":
		return Adverb, nil
	}
	return None, fmt.Errorf("%q: %w", s, internalerr.ErrUnknownPOS)
}

func (p POS) String() string {
	switch p {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	case AdjectiveSatellite:
		return "adjective satellite"
	case Adverb:
		return "adverb"
	case None:
		return "none"
	}
	return string(p)
}

// Base folds AdjectiveSatellite into Adjective.
func (p POS) Base() POS {
	if p == AdjectiveSatellite {
		return Adjective
	}
	return p
}
