// Package extract holds the pure text extractors the screening conversation
// dispatches to. Every extractor maps one raw user message to a candidate
// field update; none of them touch session state.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	fillerRe     = regexp.MustCompile(`(?i)\b(hi|hello|hey|my name is|i am|i'm)\b`)
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe      = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	experienceRe = regexp.MustCompile(`(?i)\b(\d+)\s*(years?|yrs?)\b`)
)

// Name strips greeting and self-introduction filler from the message and
// accepts whatever remains as the candidate's name, provided it is longer
// than one character. The second return value reports whether a usable name
// was found.
func Name(text string) (string, bool) {
	cleaned := fillerRe.ReplaceAllString(text, "")
	cleaned = strings.Trim(cleaned, " \t\r\n,.!")
	cleaned = strings.TrimSpace(cleaned)

	if utf8.RuneCountInString(cleaned) <= 1 {
		return "", false
	}
	return cleaned, true
}

// Contact searches the message for an email-shaped and a phone-shaped
// substring independently. Either, both, or neither may be present; absent
// values come back empty and the caller leaves the stored field untouched.
func Contact(text string) (email, phone string) {
	email = emailRe.FindString(text)
	phone = phoneRe.FindString(text)
	return email, phone
}

// Experience looks for a "<digits> years" style token and returns the digit
// group when present. Without one the whole trimmed message is kept verbatim,
// so this extractor always produces a value.
func Experience(text string) string {
	if m := experienceRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return strings.TrimSpace(text)
}

// Verbatim trims the message and stores it as-is. Used for the position and
// location stages, which do no parsing.
func Verbatim(text string) string {
	return strings.TrimSpace(text)
}
