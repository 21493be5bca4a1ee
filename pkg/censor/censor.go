package censor

// DefaultCensorChar replaces every rune of a censored match.
const DefaultCensorChar = '*'

// CensorString censors sentence with DefaultCensorChar.
func (f *Filter) CensorString(sentence string) string {
	return f.Censor(sentence, DefaultCensorChar, false)
}

// Censor returns sentence with every complete-word or phrase profanity
// overwritten by censorChar, one rune for one rune. Case, spacing and
// punctuation outside the matches are kept verbatim.
//
// With digitAware set, digits attached to a profanity are censored with it
// ("motherfucker1" becomes thirteen censor characters).
//
// Text without a match is returned as is. Invalid UTF-8 in text that has a
// match comes back as U+FFFD.
func (f *Filter) Censor(sentence string, censorChar rune, digitAware bool) string {
	if sentence == "" {
		return ""
	}

	out := []rune(sentence)
	tracker := []rune(sentence)
	masked := false

	for _, c := range f.candidates(stripPunctuation(sentence)) {
		if isPhrase(c) {
			needle := []rune(c)
			for i := indexFold(out, needle, 0); i >= 0; i = indexFold(out, needle, i+len(needle)) {
				fill(out, i, i+len(needle), censorChar)
				fill(tracker, i, i+len(needle), trackerMark)
				masked = true
			}
			continue
		}

		f.resolve(tracker, c, digitAware, func(sp span) {
			fill(out, sp.start, sp.end, censorChar)
			masked = true
		})
	}

	if !masked {
		return sentence
	}
	return string(out)
}
