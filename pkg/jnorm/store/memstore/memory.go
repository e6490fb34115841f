package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/jnorm/pkg/jnorm/internalerr"
	"github.com/cognicore/jnorm/pkg/jnorm/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu         sync.RWMutex
	closed     bool
	senses     map[string]map[string]store.Sense // lemma -> id -> sense
	exceptions map[exceptionKey][]string
}

type exceptionKey struct {
	form string
	pos  string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		senses:     make(map[string]map[string]store.Sense),
		exceptions: make(map[exceptionKey][]string),
	}
}

// Close implements store.Store. Later calls fail with
// internalerr.ErrStoreUnavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// UpsertSense inserts or replaces a sense, keyed by ID.
func (s *Store) UpsertSense(ctx context.Context, sense store.Sense) error {
	if sense.ID == "" || sense.Lemma == "" || sense.POS == "" {
		return fmt.Errorf("upsert sense %+v: %w", sense, internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return internalerr.ErrStoreUnavailable
	}

	// A sense may move between lemmas when re-imported.
	for lemma, byID := range s.senses {
		if _, ok := byID[sense.ID]; ok && lemma != sense.Lemma {
			delete(byID, sense.ID)
			if len(byID) == 0 {
				delete(s.senses, lemma)
			}
		}
	}

	byID, ok := s.senses[sense.Lemma]
	if !ok {
		byID = make(map[string]store.Sense)
		s.senses[sense.Lemma] = byID
	}
	byID[sense.ID] = sense
	return nil
}

// Senses returns senses of lemma filtered by part of speech.
func (s *Store) Senses(ctx context.Context, lemma string, pos ...string) ([]store.Sense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}

	want := make(map[string]struct{}, len(pos))
	for _, p := range pos {
		want[p] = struct{}{}
	}

	var out []store.Sense
	for _, sense := range s.senses[lemma] {
		if len(want) > 0 {
			if _, ok := want[sense.POS]; !ok {
				continue
			}
		}
		out = append(out, sense)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpsertException records an irregular form. Lemmas for the same form and
// part of speech accumulate in insertion order without duplicates.
func (s *Store) UpsertException(ctx context.Context, e store.Exception) error {
	if e.Form == "" || e.POS == "" || e.Lemma == "" {
		return fmt.Errorf("upsert exception %+v: %w", e, internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return internalerr.ErrStoreUnavailable
	}

	key := exceptionKey{form: e.Form, pos: e.POS}
	for _, lemma := range s.exceptions[key] {
		if lemma == e.Lemma {
			return nil
		}
	}
	s.exceptions[key] = append(s.exceptions[key], e.Lemma)
	return nil
}

// Exceptions returns the lemmas recorded for form.
func (s *Store) Exceptions(ctx context.Context, form, pos string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}

	lemmas := s.exceptions[exceptionKey{form: form, pos: pos}]
	if len(lemmas) == 0 {
		return nil, nil
	}
	out := make([]string, len(lemmas))
	copy(out, lemmas)
	return out, nil
}

// Stats counts stored records.
func (s *Store) Stats(ctx context.Context) (store.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.Stats{}, internalerr.ErrStoreUnavailable
	}

	var st store.Stats
	st.Lemmas = int64(len(s.senses))
	for _, byID := range s.senses {
		st.Senses += int64(len(byID))
	}
	for _, lemmas := range s.exceptions {
		st.Exceptions += int64(len(lemmas))
	}
	return st, nil
}
