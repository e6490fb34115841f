package lexicon

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"strings"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/jnorm/pkg/jnorm/store"
)

// LoadStats reports what LoadYAML imported.
type LoadStats struct {
	Senses     int
	Exceptions int
}

type yamlLexicon struct {
	Entries []yamlEntry `yaml:"entries"`
}

type yamlEntry struct {
	ID         string   `yaml:"id"`
	Lemma      string   `yaml:"lemma"`
	POS        string   `yaml:"pos"`
	Gloss      string   `yaml:"gloss"`
	Exceptions []string `yaml:"exceptions"`
}

// LoadYAML imports a lexicon file into st.
//
// Expected format:
//
//	entries:
//	  - lemma: run
//	    pos: v
//	    gloss: move fast
//	    exceptions: [ran]
//	  - lemma: goose
//	    pos: noun
//	    exceptions: [geese]
//
// Notes:
//   - Lemmas and exceptions are lower-cased
//   - An entry's rank is its position among entries of the same lemma
//   - Entries without an id get a ULID
func LoadYAML(ctx context.Context, path string, st store.Store) (LoadStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadStats{}, err
	}
	return ImportYAML(ctx, data, st)
}

// ImportYAML is LoadYAML for an in-memory document.
func ImportYAML(ctx context.Context, data []byte, st store.Store) (LoadStats, error) {
	var doc yamlLexicon
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return LoadStats{}, fmt.Errorf("parse lexicon: %w", err)
	}

	entropy := ulid.Monotonic(rand.Reader, 0)
	ranks := make(map[string]int)

	var stats LoadStats
	for i, entry := range doc.Entries {
		lemma := strings.ToLower(strings.TrimSpace(entry.Lemma))
		pos, err := ParsePOS(entry.POS)
		if err != nil {
			return stats, fmt.Errorf("entry %d (%s): %w", i, lemma, err)
		}
		if pos == None {
			pos = Noun
		}

		id := entry.ID
		if id == "" {
			id = ulid.MustNew(ulid.Now(), entropy).String()
		}

		sense := store.Sense{
			ID:    id,
			Lemma: lemma,
			POS:   string(pos),
			Rank:  ranks[lemma],
			Gloss: entry.Gloss,
		}
		if err := st.UpsertSense(ctx, sense); err != nil {
			return stats, fmt.Errorf("entry %d (%s): %w", i, lemma, err)
		}
		ranks[lemma]++
		stats.Senses++

		for _, form := range entry.Exceptions {
			e := store.Exception{
				Form:  strings.ToLower(strings.TrimSpace(form)),
				POS:   string(pos.Base()),
				Lemma: lemma,
			}
			if err := st.UpsertException(ctx, e); err != nil {
				return stats, fmt.Errorf("entry %d (%s) exception %q: %w", i, lemma, form, err)
			}
			stats.Exceptions++
		}
	}
	return stats, nil
}
