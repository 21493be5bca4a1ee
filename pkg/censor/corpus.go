package censor

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed default_words.json
var defaultWordsJSON []byte

// WordList is the on-disk format of a corpus file.
type WordList struct {
	Profanities []string `json:"profanities"`
	Allow       []string `json:"allow,omitempty"`
}

// DefaultWords returns the profanity list shipped with the package.
func DefaultWords() []string {
	var wl WordList
	if err := json.Unmarshal(defaultWordsJSON, &wl); err != nil {
		panic(fmt.Sprintf("censor: malformed default corpus: %v", err))
	}
	return wl.Profanities
}

// LoadWordsFromJSON reads a corpus file.
func LoadWordsFromJSON(path string) (WordList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WordList{}, err
	}

	var wl WordList
	if err := json.Unmarshal(data, &wl); err != nil {
		return WordList{}, fmt.Errorf("failed to parse corpus %s: %w", path, err)
	}
	if wl.Profanities == nil {
		return WordList{}, fmt.Errorf("%w: corpus %s has no profanities", ErrInvalidArgument, path)
	}

	return wl, nil
}

// LoadFromJSON replaces the profanity list with the one in the corpus file at
// path and adds its allow entries to the allow-list.
func (f *Filter) LoadFromJSON(path string) error {
	wl, err := LoadWordsFromJSON(path)
	if err != nil {
		return err
	}

	f.words.Clear()
	if err := f.AddProfanities(wl.Profanities); err != nil {
		return err
	}
	for _, w := range wl.Allow {
		if err := f.allowList.Add(w); err != nil {
			return err
		}
	}

	return nil
}
