package store

import (
	"errors"
	"time"

	"github.com/blackwell-systems/textstat/internal/analyzer"
)

// ErrNotFound is returned when a requested analysis does not exist.
var ErrNotFound = errors.New("analysis not found")

// ErrNotInitialized is returned when the history database has no schema yet.
var ErrNotInitialized = errors.New("history database not initialized: run 'textstat analyze --save' first")

// Analysis is one saved report.
type Analysis struct {
	ID            int64     `json:"id"`
	Source        string    `json:"source"` // file path, "-" for stdin, "args" for --text
	CreatedAt     time.Time `json:"created_at"`
	Words         int       `json:"words"`
	Chars         int       `json:"chars"`
	CharsNoSpaces int       `json:"chars_no_spaces"`
	Sentences     int       `json:"sentences"`
	UniqueWords   int       `json:"unique_words"`
}

// Report converts the saved counts back into an analyzer.Report with the
// given frequencies.
func (a *Analysis) Report(freq map[string]int) analyzer.Report {
	return analyzer.Report{
		Words:         a.Words,
		Chars:         a.Chars,
		CharsNoSpaces: a.CharsNoSpaces,
		Sentences:     a.Sentences,
		Frequency:     freq,
	}
}
