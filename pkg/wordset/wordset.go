// Package wordset provides a case-insensitive, deduplicating set of words
// that keeps insertion order.
package wordset

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidArgument = errors.New("invalid argument")

type Set struct {
	words []string
	index map[string]int
}

// New returns a set holding words in the given order. Empty words are skipped.
func New(words ...string) *Set {
	s := Set{index: make(map[string]int, len(words))}
	for _, w := range words {
		if w == "" {
			continue
		}
		s.add(strings.ToLower(w))
	}

	return &s
}

// Add inserts word in lower case. Adding a word that is already present is a no-op.
func (s *Set) Add(word string) error {
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidArgument)
	}
	s.add(strings.ToLower(word))

	return nil
}

func (s *Set) add(lower string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[lower]; ok {
		return
	}
	s.index[lower] = len(s.words)
	s.words = append(s.words, lower)
}

// Remove deletes word and reports whether it was present.
func (s *Set) Remove(word string) (bool, error) {
	if word == "" {
		return false, fmt.Errorf("%w: empty word", ErrInvalidArgument)
	}

	lower := strings.ToLower(word)
	i, ok := s.index[lower]
	if !ok {
		return false, nil
	}

	s.words = append(s.words[:i], s.words[i+1:]...)
	delete(s.index, lower)
	for j := i; j < len(s.words); j++ {
		s.index[s.words[j]] = j
	}

	return true, nil
}

func (s *Set) Contains(word string) (bool, error) {
	if word == "" {
		return false, fmt.Errorf("%w: empty word", ErrInvalidArgument)
	}
	_, ok := s.index[strings.ToLower(word)]

	return ok, nil
}

func (s *Set) Clear() {
	s.words = nil
	s.index = make(map[string]int)
}

func (s *Set) Count() int {
	return len(s.words)
}

// List returns a copy of the words in insertion order.
func (s *Set) List() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)

	return out
}
