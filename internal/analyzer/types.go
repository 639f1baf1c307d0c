package analyzer

// Report is a snapshot of every statistic for one text.
type Report struct {
	Words         int            `json:"words"`
	Chars         int            `json:"chars"`
	CharsNoSpaces int            `json:"chars_no_spaces"`
	Sentences     int            `json:"sentences"`
	Frequency     map[string]int `json:"frequency"`
}

// UniqueWords returns the number of distinct lower-cased tokens.
func (r Report) UniqueWords() int {
	return len(r.Frequency)
}

// TermCount pairs a lower-cased token with its number of occurrences.
type TermCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}
