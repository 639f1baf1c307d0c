// Package analyzer computes word, character and sentence statistics over a
// piece of text.
//
// A TextAnalyzer holds a single string fixed at construction. Every query is
// a pure function of that string, so one instance can be shared between
// goroutines without locking.
//
// Example usage:
//
//	a := analyzer.New("Hello world. This is a test.")
//	a.WordCount()      // 6
//	a.CharCount(true)  // 28
//	a.SentenceCount()  // 2
package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TextAnalyzer answers statistics queries about one immutable text.
type TextAnalyzer struct {
	text string
}

// New creates a TextAnalyzer for text. The text is stored verbatim, with no
// trimming or normalization.
func New(text string) *TextAnalyzer {
	return &TextAnalyzer{text: text}
}

// Text returns the text the analyzer was created with.
func (a *TextAnalyzer) Text() string {
	return a.text
}

// WordCount returns the number of whitespace-delimited tokens in the text.
// Runs of whitespace count as a single delimiter and leading or trailing
// whitespace is ignored.
func (a *TextAnalyzer) WordCount() int {
	return len(tokens(a.text))
}

// isSpace reports whether r separates tokens. Besides unicode.IsSpace this
// includes the ASCII file, group, record and unit separators (0x1C-0x1F).
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// tokens splits s into maximal runs of non-space characters.
func tokens(s string) []string {
	return strings.FieldsFunc(s, isSpace)
}

// CharCount returns the number of characters (runes) in the text.
//
// When includeSpaces is false, only the ASCII space character is excluded.
// Tabs, newlines and other whitespace are still counted.
func (a *TextAnalyzer) CharCount(includeSpaces bool) int {
	n := utf8.RuneCountInString(a.text)
	if includeSpaces {
		return n
	}
	return n - strings.Count(a.text, " ")
}

// SentenceCount returns the number of fragments between '.' characters that
// contain something other than whitespace. A non-empty text with no period
// is one sentence. '!' and '?' are not sentence boundaries.
func (a *TextAnalyzer) SentenceCount() int {
	count := 0
	for _, fragment := range strings.Split(a.text, ".") {
		if strings.TrimFunc(fragment, isSpace) != "" {
			count++
		}
	}
	return count
}

// Analyze runs every query once and returns the results as a Report.
func (a *TextAnalyzer) Analyze() Report {
	return Report{
		Words:         a.WordCount(),
		Chars:         a.CharCount(true),
		CharsNoSpaces: a.CharCount(false),
		Sentences:     a.SentenceCount(),
		Frequency:     a.WordFrequency(),
	}
}
