package analyzer

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordFrequency maps every distinct lower-cased token to the number of times
// it occurs. Tokenization matches WordCount, so the values always sum to
// WordCount(). The returned map is never nil.
func (a *TextAnalyzer) WordFrequency() map[string]int {
	freq := make(map[string]int)
	for _, word := range tokens(a.text) {
		freq[lower(word)]++
	}
	return freq
}

// lower lower-cases a token. Bytes that are not valid UTF-8 are kept as they
// are, so distinct tokens in other encodings stay distinct.
func lower(word string) string {
	if utf8.ValidString(word) {
		return strings.ToLower(word)
	}

	var b strings.Builder
	b.Grow(len(word))
	for i := 0; i < len(word); {
		r, size := utf8.DecodeRuneInString(word[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(word[i])
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		i += size
	}
	return b.String()
}

// TopWords returns the n most frequent tokens, ordered by count descending
// and then alphabetically. A non-positive n returns every token.
func (a *TextAnalyzer) TopWords(n int) []TermCount {
	return RankFrequency(a.WordFrequency(), n)
}

// RankFrequency orders a frequency map the same way TopWords does. It is
// used for frequencies loaded back from the history store.
func RankFrequency(freq map[string]int, n int) []TermCount {
	ranked := make([]TermCount, 0, len(freq))
	for word, count := range freq {
		ranked = append(ranked, TermCount{Word: word, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
