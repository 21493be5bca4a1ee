package censor

import "unicode"

// trackerMark overwrites spans of the tracker buffer that were already
// visited. It is punctuation, so a blanked span also acts as a word boundary.
const trackerMark = '*'

// span is a half-open rune range [start, end) of a text and the lower-cased
// word it encloses.
type span struct {
	start int
	end   int
	word  string
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

// findEnclosingWord locates the first case-insensitive occurrence of
// candidate in text and widens it to the whole word around it.
// candidate must already be lower case.
func findEnclosingWord(text []rune, candidate []rune) (span, bool) {
	if len(text) == 0 || len(candidate) == 0 {
		return span{}, false
	}

	i := indexFold(text, candidate, 0)
	if i < 0 {
		return span{}, false
	}

	start, end := i, i+len(candidate)
	for start > 0 && !isBoundary(text[start-1]) {
		start--
	}
	for end < len(text) && !isBoundary(text[end]) {
		end++
	}

	word := make([]rune, end-start)
	for j, r := range text[start:end] {
		word[j] = unicode.ToLower(r)
	}

	return span{start: start, end: end, word: string(word)}, true
}

// indexFold returns the index of the first case-insensitive occurrence of
// needle in haystack at or after from, or -1. needle must be lower case.
func indexFold(haystack, needle []rune, from int) int {
	if len(needle) == 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, r := range needle {
			if unicode.ToLower(haystack[i+j]) != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}

	return -1
}

// lowerRunes lower-cases s rune by rune, so the result has exactly as many
// runes as s.
func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// fill overwrites buf[start:end] with ch, leaving spaces in place.
func fill(buf []rune, start, end int, ch rune) {
	for i := start; i < end; i++ {
		if unicode.IsSpace(buf[i]) {
			continue
		}
		buf[i] = ch
	}
}
