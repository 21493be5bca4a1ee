// Package storage persists the profanity list and the allow-list.
package storage

import (
	"context"
	"fmt"
)

// Names of the persisted word lists.
const (
	ListProfanity = "profanity"
	ListAllow     = "allow"
)

var (
	ErrConnectDB       = fmt.Errorf("unable to establish DB connection")
	ErrDBNotResponding = fmt.Errorf("DB not responding")

	ErrUnknownList  = fmt.Errorf("unknown word list")
	ErrWordNotFound = fmt.Errorf("word not found")
)

// WordStore keeps lower-cased, deduplicated word lists in insertion order.
type WordStore interface {
	Words(ctx context.Context, list string) ([]string, error)
	AddWords(ctx context.Context, list string, words ...string) error
	// RemoveWord returns ErrWordNotFound if word is not on list.
	RemoveWord(ctx context.Context, list, word string) error
	Clear(ctx context.Context, list string) error
	Close()
}

// ValidateList returns ErrUnknownList for anything but ListProfanity and ListAllow.
func ValidateList(list string) error {
	if list != ListProfanity && list != ListAllow {
		return fmt.Errorf("%w: %q", ErrUnknownList, list)
	}
	return nil
}
