// Package moderator shares one profanity filter between goroutines and keeps
// its word lists in sync with persistent storage.
package moderator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"profanity/pkg/censor"
	"profanity/pkg/models"
	"profanity/pkg/storage"
)

var (
	ErrInvalidArgument = censor.ErrInvalidArgument
	ErrWordNotFound    = storage.ErrWordNotFound
)

// Options tune censoring.
type Options struct {
	CensorChar rune
	DigitAware bool
}

// DefaultOptions censors with '*' and keeps trailing digits.
var DefaultOptions = Options{CensorChar: censor.DefaultCensorChar}

type Moderator struct {
	mu     sync.RWMutex
	filter *censor.Filter
	store  storage.WordStore
}

// New wraps filter and store. Mutations are written to store first and then
// applied to filter; queries only read filter.
func New(filter *censor.Filter, store storage.WordStore) *Moderator {
	return &Moderator{filter: filter, store: store}
}

// Load synchronizes the filter with storage. An empty persisted profanity
// list is seeded from the filter, otherwise the persisted list replaces the
// filter's. Allow-lists are merged both ways.
func (m *Moderator) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	words, err := m.store.Words(ctx, storage.ListProfanity)
	if err != nil {
		return fmt.Errorf("failed to read profanity list: %w", err)
	}
	if len(words) == 0 {
		if err := m.store.AddWords(ctx, storage.ListProfanity, m.filter.Profanities()...); err != nil {
			return fmt.Errorf("failed to seed profanity list: %w", err)
		}
		log.Infof("[moderator] seeded storage with %d profanities", m.filter.Count())
	} else {
		m.filter.Clear()
		if err := m.filter.AddProfanities(words); err != nil {
			return err
		}
		log.Infof("[moderator] loaded %d profanities from storage", len(words))
	}

	allow, err := m.store.Words(ctx, storage.ListAllow)
	if err != nil {
		return fmt.Errorf("failed to read allow-list: %w", err)
	}
	if err := m.store.AddWords(ctx, storage.ListAllow, m.filter.AllowList().List()...); err != nil {
		return fmt.Errorf("failed to seed allow-list: %w", err)
	}
	for _, w := range allow {
		if err := m.filter.AllowList().Add(w); err != nil {
			return err
		}
	}

	return nil
}

func (m *Moderator) IsProfanity(word string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filter.IsProfanity(word)
}

// Check reports whether text is profane, either by a detected profanity or
// by a span that censoring would mask.
func (m *Moderator) Check(text string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.filter.ContainsProfanity(text) {
		return true
	}
	return m.filter.CensorString(text) != text
}

func (m *Moderator) Profanities(text string, removePartialMatches bool) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filter.AllProfanities(text, removePartialMatches)
}

func (m *Moderator) Censor(text string, opts Options) string {
	if opts.CensorChar == 0 {
		opts.CensorChar = censor.DefaultCensorChar
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filter.Censor(text, opts.CensorChar, opts.DigitAware)
}

// Moderate builds the verdict for comment under a single read lock. The
// comment is profane when a profanity is reported or when censoring changed
// its text. Detection ignores '.' and ',' while censoring does not, so
// "shit.shit" is censored without a reported profanity.
func (m *Moderator) Moderate(comment models.Comment, opts Options) models.Verdict {
	if opts.CensorChar == 0 {
		opts.CensorChar = censor.DefaultCensorChar
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	found := m.filter.AllProfanities(comment.Text, true)
	censored := m.filter.Censor(comment.Text, opts.CensorChar, opts.DigitAware)
	return models.Verdict{
		CommentID:   comment.ID,
		Profane:     len(found) > 0 || censored != comment.Text,
		Profanities: found,
		Censored:    censored,
	}
}

func (m *Moderator) Words() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filter.Profanities()
}

func (m *Moderator) AllowList() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.filter.AllowList().List()
}

func (m *Moderator) AddProfanities(ctx context.Context, words []string) error {
	words, err := normalize(words)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.AddWords(ctx, storage.ListProfanity, words...); err != nil {
		return err
	}
	return m.filter.AddProfanities(words)
}

// RemoveProfanity returns ErrWordNotFound if word was not listed.
func (m *Moderator) RemoveProfanity(ctx context.Context, word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.store.RemoveWord(ctx, storage.ListProfanity, word)
	if err != nil && !errors.Is(err, ErrWordNotFound) {
		return err
	}

	removed, err := m.filter.RemoveProfanity(word)
	if err != nil {
		return err
	}
	if !removed {
		return ErrWordNotFound
	}

	return nil
}

func (m *Moderator) Allow(ctx context.Context, words []string) error {
	words, err := normalize(words)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.AddWords(ctx, storage.ListAllow, words...); err != nil {
		return err
	}
	for _, w := range words {
		if err := m.filter.AllowList().Add(w); err != nil {
			return err
		}
	}

	return nil
}

// Disallow removes word from the allow-list. It returns ErrWordNotFound if
// word was not allowed.
func (m *Moderator) Disallow(ctx context.Context, word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return fmt.Errorf("%w: empty word", ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.store.RemoveWord(ctx, storage.ListAllow, word)
	if err != nil && !errors.Is(err, ErrWordNotFound) {
		return err
	}

	removed, err := m.filter.AllowList().Remove(word)
	if err != nil {
		return err
	}
	if !removed {
		return ErrWordNotFound
	}

	return nil
}

// normalize trims and lower-cases words the way every WordStore saves them,
// so the filter and the store hold identical entries.
func normalize(words []string) ([]string, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: no words", ErrInvalidArgument)
	}

	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			return nil, fmt.Errorf("%w: blank word", ErrInvalidArgument)
		}
		out = append(out, w)
	}
	return out, nil
}
