package memdb

import (
	"context"
	"strings"
	"sync"

	"profanity/pkg/storage"
	"profanity/pkg/wordset"
)

type Store struct {
	mu    sync.Mutex
	lists map[string]*wordset.Set
}

func New() *Store {
	db := Store{
		lists: map[string]*wordset.Set{
			storage.ListProfanity: wordset.New(),
			storage.ListAllow:     wordset.New(),
		},
	}

	return &db
}

func (db *Store) Words(ctx context.Context, list string) ([]string, error) {
	if err := storage.ValidateList(list); err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	return db.lists[list].List(), nil
}

func (db *Store) AddWords(ctx context.Context, list string, words ...string) error {
	if err := storage.ValidateList(list); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	for _, w := range words {
		if err := db.lists[list].Add(strings.TrimSpace(w)); err != nil {
			return err
		}
	}

	return nil
}

func (db *Store) RemoveWord(ctx context.Context, list, word string) error {
	if err := storage.ValidateList(list); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	removed, err := db.lists[list].Remove(word)
	if err != nil {
		return err
	}
	if !removed {
		return storage.ErrWordNotFound
	}

	return nil
}

func (db *Store) Clear(ctx context.Context, list string) error {
	if err := storage.ValidateList(list); err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	db.lists[list].Clear()
	return nil
}

func (db *Store) Close() {}
