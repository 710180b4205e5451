// Package postgres is the pgx-backed quote repository, used when
// DATABASE_URL is configured. The counter lives in a single-row table
// updated in the same transaction as the insert.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cobuilt/quote-bot/internal/domain/quote"
	"cobuilt/quote-bot/internal/infra/store"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_counter (
			id smallint PRIMARY KEY CHECK (id = 1),
			value bigint NOT NULL
		)`,
		fmt.Sprintf(`INSERT INTO quote_counter (id, value) VALUES (1, %d) ON CONFLICT (id) DO NOTHING`, store.CounterSeed),
		`CREATE TABLE IF NOT EXISTS quotes (
			number text PRIMARY KEY,
			submitter_id bigint NOT NULL,
			data jsonb NOT NULL
		)`,
	}
	for _, q := range stmts {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Submit(ctx context.Context, q quote.Quote) (quote.Quote, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return quote.Quote{}, err
	}
	defer tx.Rollback(ctx)

	var seq int64
	if err := tx.QueryRow(ctx, `UPDATE quote_counter SET value = value + 1 WHERE id = 1 RETURNING value`).Scan(&seq); err != nil {
		return quote.Quote{}, err
	}
	q.Number = store.FormatNumber(seq)
	q.Status = quote.StatusPending

	data, err := json.Marshal(q)
	if err != nil {
		return quote.Quote{}, err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO quotes (number, submitter_id, data) VALUES ($1, $2, $3)`, q.Number, q.SubmitterID, data); err != nil {
		return quote.Quote{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return quote.Quote{}, err
	}
	return q, nil
}

func (s *Store) Get(ctx context.Context, number string) (quote.Quote, bool, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM quotes WHERE number = $1`, number).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return quote.Quote{}, false, nil
		}
		return quote.Quote{}, false, err
	}
	var q quote.Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return quote.Quote{}, false, err
	}
	return q, true, nil
}

func (s *Store) Update(ctx context.Context, q quote.Quote) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `UPDATE quotes SET data = $2 WHERE number = $1`, q.Number, data)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quote %s not found", q.Number)
	}
	return nil
}

func (s *Store) ListByUser(ctx context.Context, userID int64) ([]quote.Quote, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM quotes WHERE submitter_id = $1 ORDER BY number`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []quote.Quote
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var q quote.Quote
		if err := json.Unmarshal(data, &q); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) Close() { s.pool.Close() }
