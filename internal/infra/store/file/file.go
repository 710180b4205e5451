// Package file persists quotes as a single JSON document holding the
// sequence counter and the full quote map, rewritten whole on every mutation.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"cobuilt/quote-bot/internal/domain/quote"
	"cobuilt/quote-bot/internal/infra/store"
)

type state struct {
	QuoteCounter int64                  `json:"quote_counter"`
	Quotes       map[string]quote.Quote `json:"quotes"`
}

type Store struct {
	path string

	mu    sync.Mutex
	state state
}

// New loads the data file if it exists, otherwise starts from the counter
// seed with no quotes.
func New(path string) (*Store, error) {
	s := &Store{
		path: path,
		state: state{
			QuoteCounter: store.CounterSeed,
			Quotes:       make(map[string]quote.Quote),
		},
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if s.state.Quotes == nil {
		s.state.Quotes = make(map[string]quote.Quote)
	}
	return s, nil
}

func (s *Store) Submit(_ context.Context, q quote.Quote) (quote.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.QuoteCounter++
	q.Number = store.FormatNumber(s.state.QuoteCounter)
	q.Status = quote.StatusPending
	s.state.Quotes[q.Number] = q

	if err := s.persistLocked(); err != nil {
		// Disk still holds the previous state; roll the memory image back so
		// the number is reissued on retry.
		s.state.QuoteCounter--
		delete(s.state.Quotes, q.Number)
		return quote.Quote{}, err
	}
	return q, nil
}

func (s *Store) Get(_ context.Context, number string) (quote.Quote, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.state.Quotes[number]
	return q, ok, nil
}

func (s *Store) Update(_ context.Context, q quote.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.state.Quotes[q.Number]
	if !ok {
		return fmt.Errorf("quote %s not found", q.Number)
	}
	s.state.Quotes[q.Number] = q
	if err := s.persistLocked(); err != nil {
		s.state.Quotes[q.Number] = prev
		return err
	}
	return nil
}

func (s *Store) ListByUser(_ context.Context, userID int64) ([]quote.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []quote.Quote
	for _, q := range s.state.Quotes {
		if q.SubmitterID == userID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *Store) Close() {}

// persistLocked writes the whole state to a temp file and renames it into
// place so a failed write never leaves a half-written data file.
func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".quotes-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
