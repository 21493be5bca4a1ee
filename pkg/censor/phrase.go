package censor

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// stripPunctuation drops the full stops and commas that would otherwise stick
// to the words around them.
func stripPunctuation(s string) string {
	return strings.NewReplacer(".", "", ",", "").Replace(s)
}

// filterAgainstAllowList returns words without the allow-listed ones,
// preserving order and case.
func (f *Filter) filterAgainstAllowList(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if f.allowed(w) {
			continue
		}
		out = append(out, w)
	}

	return out
}

// reconstructSentence joins words with single spaces. The trailing space is
// kept.
func reconstructSentence(words []string) string {
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(w)
		sb.WriteByte(' ')
	}

	return sb.String()
}

// scanPhrases returns every listed word or phrase that occurs as a substring
// of sentence, in list order. Matches are not boundary-checked.
func (f *Filter) scanPhrases(sentence string) []string {
	lower := strings.ToLower(sentence)

	var found []string
	for _, w := range f.words.List() {
		if strings.Contains(lower, w) {
			found = append(found, w)
		}
	}

	return found
}

// candidates runs the allow-list filter and the phrase scan over an already
// stripped sentence. The result has no duplicates and is ordered longest
// first; equal lengths keep list order.
func (f *Filter) candidates(stripped string) []string {
	words := f.filterAgainstAllowList(strings.Fields(stripped))
	raw := f.scanPhrases(reconstructSentence(words))

	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, c := range raw {
		if seen[c] || !hasWordRune(c) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})

	return out
}

func isPhrase(s string) bool {
	return len(strings.Fields(s)) > 1
}

// hasWordRune reports whether s has at least one rune that is not a word
// boundary. Entries made only of boundary runes can never form a word.
func hasWordRune(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !isBoundary(r) }) >= 0
}
