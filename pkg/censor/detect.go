package censor

import "strings"

// IsProfanity reports whether word is listed and not allow-listed.
// Only exact membership counts; no boundary logic applies.
func (f *Filter) IsProfanity(word string) bool {
	if word == "" {
		return false
	}
	if f.allowed(word) {
		return false
	}

	ok, err := f.words.Contains(word)
	return err == nil && ok
}

// FirstProfanity returns the first word of sentence, left to right, that is a
// listed profanity, in lower case. It returns an empty string if there is none.
func (f *Filter) FirstProfanity(sentence string) string {
	if sentence == "" {
		return ""
	}

	words := f.filterAgainstAllowList(strings.Fields(stripPunctuation(sentence)))
	for _, w := range words {
		lw := strings.ToLower(w)
		if ok, _ := f.words.Contains(lw); ok {
			return lw
		}
	}

	return ""
}

// ContainsProfanity reports whether text has at least one complete-word or
// phrase match.
func (f *Filter) ContainsProfanity(text string) bool {
	return len(f.AllProfanities(text, true)) > 0
}

// AllProfanities returns every profanity in sentence that forms a complete
// word or a listed phrase. Longer entries are resolved first, so the result
// lists them ahead of shorter ones of the same occurrence.
//
// With removePartialMatches set, an entry contained in another reported entry
// is dropped ("twat" when "twatting" is present).
func (f *Filter) AllProfanities(sentence string, removePartialMatches bool) []string {
	if sentence == "" {
		return []string{}
	}

	stripped := stripPunctuation(sentence)
	tracker := lowerRunes(stripped)

	found := make([]string, 0)
	seen := make(map[string]bool)
	accept := func(word string) {
		if seen[word] {
			return
		}
		seen[word] = true
		found = append(found, word)
	}

	for _, c := range f.candidates(stripped) {
		if isPhrase(c) {
			accept(c)
			needle := []rune(c)
			if i := indexFold(tracker, needle, 0); i >= 0 {
				fill(tracker, i, i+len(needle), trackerMark)
			}
			continue
		}

		f.resolve(tracker, c, false, func(span) { accept(c) })
	}

	if removePartialMatches {
		found = dropPartialMatches(found)
	}

	return found
}

// resolve visits every occurrence of the single-token candidate in tracker.
// Each visited span is blanked so the next call finds the next occurrence;
// onMatch is called for spans whose enclosing word is the candidate itself.
//
// With digitAware set, digits and hyphens are ignored when comparing the
// enclosing word, so "fucker1" matches "fucker".
func (f *Filter) resolve(tracker []rune, candidate string, digitAware bool, onMatch func(span)) {
	needle := []rune(candidate)
	for {
		sp, ok := findEnclosingWord(tracker, needle)
		if !ok {
			return
		}

		word := sp.word
		if digitAware {
			word = stripDigits(word)
		}
		if word == candidate && !f.allowed(sp.word) {
			onMatch(sp)
		}

		fill(tracker, sp.start, sp.end, trackerMark)
	}
}

func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

func dropPartialMatches(words []string) []string {
	out := make([]string, 0, len(words))
	for i, x := range words {
		partial := false
		for j, y := range words {
			if i != j && x != y && strings.Contains(y, x) {
				partial = true
				break
			}
		}
		if !partial {
			out = append(out, x)
		}
	}

	return out
}
