package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
	"github.com/cognicore/jnorm/pkg/jnorm/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// lexicon schema if it is missing.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS senses (
	id TEXT PRIMARY KEY,
	lemma TEXT NOT NULL,
	pos TEXT NOT NULL,
	rank INTEGER NOT NULL DEFAULT 0,
	gloss TEXT
);

CREATE INDEX IF NOT EXISTS senses_lemma_pos ON senses(lemma, pos);

CREATE TABLE IF NOT EXISTS exceptions (
	form TEXT NOT NULL,
	pos TEXT NOT NULL,
	lemma TEXT NOT NULL,
	seq INTEGER NOT NULL,
	PRIMARY KEY(form, pos, lemma)
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertSense inserts or replaces a sense
func (s *sqliteStore) UpsertSense(ctx context.Context, sense store.Sense) error {
	if sense.ID == "" || sense.Lemma == "" || sense.POS == "" {
		return fmt.Errorf("upsert sense %+v: %w", sense, internalerr.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO senses (id, lemma, pos, rank, gloss) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	lemma=excluded.lemma,
	pos=excluded.pos,
	rank=excluded.rank,
	gloss=excluded.gloss;
`, sense.ID, sense.Lemma, sense.POS, sense.Rank, sense.Gloss)
	return err
}

// Senses returns the senses of lemma, optionally restricted to pos
func (s *sqliteStore) Senses(ctx context.Context, lemma string, pos ...string) ([]store.Sense, error) {
	query := `SELECT id, lemma, pos, rank, COALESCE(gloss, '') FROM senses WHERE lemma=?`
	args := []interface{}{lemma}
	if len(pos) > 0 {
		query += ` AND pos IN (` + placeholders(len(pos)) + `)`
		for _, p := range pos {
			args = append(args, p)
		}
	}
	query += ` ORDER BY rank, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var senses []store.Sense
	for rows.Next() {
		var sense store.Sense
		if err := rows.Scan(&sense.ID, &sense.Lemma, &sense.POS, &sense.Rank, &sense.Gloss); err != nil {
			return nil, err
		}
		senses = append(senses, sense)
	}
	return senses, rows.Err()
}

// UpsertException records an irregular form, keeping insertion order
func (s *sqliteStore) UpsertException(ctx context.Context, e store.Exception) error {
	if e.Form == "" || e.POS == "" || e.Lemma == "" {
		return fmt.Errorf("upsert exception %+v: %w", e, internalerr.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
INSERT OR IGNORE INTO exceptions (form, pos, lemma, seq)
VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM exceptions WHERE form=? AND pos=?));
`, e.Form, e.POS, e.Lemma, e.Form, e.POS)
	return err
}

// Exceptions returns the lemmas recorded for form
func (s *sqliteStore) Exceptions(ctx context.Context, form, pos string) ([]string, error) {
	return s.loadStringColumn(ctx, `SELECT lemma FROM exceptions WHERE form=? AND pos=? ORDER BY seq`, form, pos)
}

// Stats counts stored records
func (s *sqliteStore) Stats(ctx context.Context) (store.Stats, error) {
	var st store.Stats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT lemma) FROM senses`).Scan(&st.Senses, &st.Lemmas); err != nil {
		return store.Stats{}, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exceptions`).Scan(&st.Exceptions); err != nil {
		return store.Stats{}, err
	}
	return st, nil
}

func (s *sqliteStore) loadStringColumn(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
