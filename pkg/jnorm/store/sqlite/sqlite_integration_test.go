package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
	"github.com/cognicore/jnorm/pkg/jnorm/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "lexicon.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestSQLiteIntegrationSenses tests sense insertion, filtering and ordering
func TestSQLiteIntegrationSenses(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	senses := []store.Sense{
		{ID: "run.v.02", Lemma: "run", POS: "v", Rank: 1, Gloss: "operate"},
		{ID: "run.n.01", Lemma: "run", POS: "n", Rank: 0, Gloss: "a score in baseball"},
		{ID: "run.v.01", Lemma: "run", POS: "v", Rank: 0, Gloss: "move fast"},
	}
	for _, s := range senses {
		if err := st.UpsertSense(ctx, s); err != nil {
			t.Fatalf("UpsertSense: %v", err)
		}
	}

	all, err := st.Senses(ctx, "run")
	if err != nil {
		t.Fatalf("Senses: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 senses, got %d", len(all))
	}
	if all[0].ID != "run.n.01" || all[1].ID != "run.v.01" || all[2].ID != "run.v.02" {
		t.Errorf("Unexpected order: %+v", all)
	}
	if all[1].Gloss != "move fast" {
		t.Errorf("Gloss mismatch: got %q", all[1].Gloss)
	}

	verbs, err := st.Senses(ctx, "run", "v", "s")
	if err != nil {
		t.Fatalf("Senses(v,s): %v", err)
	}
	if len(verbs) != 2 {
		t.Errorf("Expected 2 verb senses, got %d", len(verbs))
	}

	missing, err := st.Senses(ctx, "sprint")
	if err != nil {
		t.Fatalf("Senses(missing): %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("Expected no senses, got %+v", missing)
	}
}

// TestSQLiteIntegrationUpsertReplaces tests that re-importing a sense updates it
func TestSQLiteIntegrationUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if err := st.UpsertSense(ctx, store.Sense{ID: "x", Lemma: "colour", POS: "n"}); err != nil {
		t.Fatalf("UpsertSense: %v", err)
	}
	if err := st.UpsertSense(ctx, store.Sense{ID: "x", Lemma: "color", POS: "n", Gloss: "hue"}); err != nil {
		t.Fatalf("UpsertSense: %v", err)
	}

	if old, _ := st.Senses(ctx, "colour"); len(old) != 0 {
		t.Errorf("Old lemma should be empty, got %+v", old)
	}
	cur, err := st.Senses(ctx, "color")
	if err != nil || len(cur) != 1 || cur[0].Gloss != "hue" {
		t.Errorf("Expected updated sense, got %+v (%v)", cur, err)
	}
}

// TestSQLiteIntegrationExceptions tests insertion order and deduplication
func TestSQLiteIntegrationExceptions(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	for _, lemma := range []string{"axis", "axe", "axis"} {
		if err := st.UpsertException(ctx, store.Exception{Form: "axes", POS: "n", Lemma: lemma}); err != nil {
			t.Fatalf("UpsertException: %v", err)
		}
	}

	got, err := st.Exceptions(ctx, "axes", "n")
	if err != nil {
		t.Fatalf("Exceptions: %v", err)
	}
	if len(got) != 2 || got[0] != "axis" || got[1] != "axe" {
		t.Errorf("Exceptions = %v, want [axis axe]", got)
	}

	st2, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st2.Exceptions != 2 {
		t.Errorf("Stats.Exceptions = %d, want 2", st2.Exceptions)
	}
}

// TestSQLiteIntegrationInvalidInput tests validation before touching the database
func TestSQLiteIntegrationInvalidInput(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if err := st.UpsertSense(ctx, store.Sense{Lemma: "run", POS: "v"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	if err := st.UpsertException(ctx, store.Exception{Form: "ran", POS: "v"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

// TestSQLiteIntegrationReopen tests that data survives closing the database
func TestSQLiteIntegrationReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "lexicon.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.UpsertSense(ctx, store.Sense{ID: "1", Lemma: "goose", POS: "n"}); err != nil {
		t.Fatalf("UpsertSense: %v", err)
	}
	if err := st.UpsertException(ctx, store.Exception{Form: "geese", POS: "n", Lemma: "goose"}); err != nil {
		t.Fatalf("UpsertException: %v", err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Senses != 1 || stats.Lemmas != 1 || stats.Exceptions != 1 {
		t.Errorf("Stats after reopen = %+v", stats)
	}
}

// TestSQLiteIntegrationClosed tests that queries on a closed store fail
func TestSQLiteIntegrationClosed(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "lexicon.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	st.Close()

	if _, err := st.Senses(ctx, "run"); err == nil {
		t.Error("Expected error from closed store")
	}
}

// TestSQLiteIntegrationConcurrentReads tests parallel lookups
func TestSQLiteIntegrationConcurrentReads(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	for i := 0; i < 20; i++ {
		s := store.Sense{ID: fmt.Sprintf("w%02d", i), Lemma: fmt.Sprintf("word%d", i%5), POS: "n", Rank: i}
		if err := st.UpsertSense(ctx, s); err != nil {
			t.Fatalf("UpsertSense: %v", err)
		}
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			senses, err := st.Senses(ctx, fmt.Sprintf("word%d", g%5))
			if err != nil {
				t.Errorf("Senses: %v", err)
				return
			}
			if len(senses) != 4 {
				t.Errorf("Expected 4 senses, got %d", len(senses))
			}
		}(g)
	}
	wg.Wait()
}

// TestSchemaCreationIdempotent tests that initSchema can run repeatedly
func TestSchemaCreationIdempotent(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	db := st.(*sqliteStore).db

	for i := 0; i < 3; i++ {
		if err := initSchema(ctx, db); err != nil {
			t.Fatalf("initSchema iteration %d: %v", i, err)
		}
	}

	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&count)
	if err != nil {
		t.Fatalf("Count tables: %v", err)
	}
	if count != 2 { // senses, exceptions
		t.Errorf("Expected 2 tables, got %d", count)
	}
}
