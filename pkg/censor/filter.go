// Package censor detects and censors profanity in free text.
//
// Detection is allow-list aware and resolves every candidate match to the
// enclosing whole word, so "Scunthorpe" is not flagged for containing a
// listed word. Multi-word phrases ("alaskan pipeline") are matched literally.
//
// Important notice: the default corpus and the test data contain explicit
// language and offensive terms required for validation. They do not represent
// the authors' views and should be treated as technical artifacts only.
package censor

import (
	"fmt"

	"profanity/pkg/wordset"
)

// ErrInvalidArgument is returned by every mutating operation given an empty
// word or a nil collection.
var ErrInvalidArgument = wordset.ErrInvalidArgument

// AllowList holds words that are never reported or censored.
// *wordset.Set satisfies it.
type AllowList interface {
	Add(word string) error
	Remove(word string) (bool, error)
	Contains(word string) (bool, error)
	Clear()
	Count() int
	List() []string
}

// Filter owns a profanity list and an allow-list.
// It is not safe for concurrent use; callers sharing a Filter between
// goroutines must synchronize access themselves.
type Filter struct {
	words     *wordset.Set
	allowList AllowList
}

// New returns a Filter seeded with the default corpus and an empty allow-list.
func New() *Filter {
	return &Filter{
		words:     wordset.New(DefaultWords()...),
		allowList: wordset.New(),
	}
}

// NewWithWords returns a Filter whose profanity list is exactly words.
func NewWithWords(words []string) (*Filter, error) {
	if words == nil {
		return nil, fmt.Errorf("%w: nil word list", ErrInvalidArgument)
	}

	f := Filter{
		words:     wordset.New(),
		allowList: wordset.New(),
	}
	if err := f.AddProfanities(words); err != nil {
		return nil, err
	}

	return &f, nil
}

// NewWithAllowList returns a Filter seeded with the default corpus that uses
// allowList, which stays owned by the caller.
func NewWithAllowList(allowList AllowList) (*Filter, error) {
	if allowList == nil {
		return nil, fmt.Errorf("%w: nil allow-list", ErrInvalidArgument)
	}

	return &Filter{
		words:     wordset.New(DefaultWords()...),
		allowList: allowList,
	}, nil
}

func (f *Filter) AllowList() AllowList {
	return f.allowList
}

func (f *Filter) AddProfanity(word string) error {
	return f.words.Add(word)
}

func (f *Filter) AddProfanities(words []string) error {
	if words == nil {
		return fmt.Errorf("%w: nil word list", ErrInvalidArgument)
	}
	for _, w := range words {
		if err := f.words.Add(w); err != nil {
			return err
		}
	}

	return nil
}

// RemoveProfanity deletes word from the profanity list and reports whether it was listed.
func (f *Filter) RemoveProfanity(word string) (bool, error) {
	return f.words.Remove(word)
}

// RemoveProfanities deletes every word in words. It reports true only if all
// of them were listed.
func (f *Filter) RemoveProfanities(words []string) (bool, error) {
	if words == nil {
		return false, fmt.Errorf("%w: nil word list", ErrInvalidArgument)
	}

	all := true
	for _, w := range words {
		removed, err := f.words.Remove(w)
		if err != nil {
			return false, err
		}
		all = all && removed
	}

	return all, nil
}

// Clear empties the profanity list. The allow-list is left untouched.
func (f *Filter) Clear() {
	f.words.Clear()
}

func (f *Filter) Count() int {
	return f.words.Count()
}

// Profanities returns the profanity list in insertion order.
func (f *Filter) Profanities() []string {
	return f.words.List()
}

// allowed reports whether word is on the allow-list.
func (f *Filter) allowed(word string) bool {
	if word == "" {
		return false
	}
	ok, err := f.allowList.Contains(word)
	return err == nil && ok
}
