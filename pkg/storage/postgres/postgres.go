package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"profanity/pkg/storage"
)

const schema = `
	CREATE TABLE IF NOT EXISTS words (
		id   BIGSERIAL PRIMARY KEY,
		list TEXT NOT NULL,
		word TEXT NOT NULL,
		UNIQUE (list, word)
	)
`

type Store struct {
	db *pgxpool.Pool
}

func New(ctx context.Context, conStr string) (*Store, error) {
	db, err := pgxpool.Connect(ctx, conStr)
	if err != nil {
		return nil, err
	}
	s := Store{
		db: db,
	}

	return &s, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close() {
	s.db.Close()
}

// Migrate creates the words table if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schema)
	return err
}

// Words returns the words of list in insertion order.
func (s *Store) Words(ctx context.Context, list string) ([]string, error) {
	if err := storage.ValidateList(list); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `SELECT word FROM words WHERE list = $1 ORDER BY id`, list)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// AddWords inserts the lower-cased words within a single transaction.
// Words already on the list are left as they are.
func (s *Store) AddWords(ctx context.Context, list string, words ...string) (err error) {
	if err := storage.ValidateList(list); err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := new(pgx.Batch)
	for _, w := range words {
		batch.Queue(`
			INSERT INTO words (list, word)
			VALUES ($1, $2)
			ON CONFLICT (list, word) DO NOTHING
		`,
			list,
			strings.ToLower(strings.TrimSpace(w)),
		)
	}

	res := tx.SendBatch(ctx, batch)
	err = res.Close()
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) RemoveWord(ctx context.Context, list, word string) error {
	if err := storage.ValidateList(list); err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM words WHERE list = $1 AND word = $2`, list, strings.ToLower(word))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrWordNotFound
	}

	return nil
}

func (s *Store) Clear(ctx context.Context, list string) error {
	if err := storage.ValidateList(list); err != nil {
		return err
	}

	_, err := s.db.Exec(ctx, `DELETE FROM words WHERE list = $1`, list)
	return err
}
