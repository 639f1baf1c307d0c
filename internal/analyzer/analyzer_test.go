package analyzer

import (
	"strings"
	"sync"
	"testing"
)

func TestNew_StoresTextVerbatim(t *testing.T) {
	text := "  padded\ttext.  "
	a := New(text)
	if a.Text() != text {
		t.Errorf("Text() = %q, want %q", a.Text(), text)
	}
}

func TestSampleSentence(t *testing.T) {
	a := New("Hello world. This is a test.")

	if got := a.WordCount(); got != 6 {
		t.Errorf("WordCount() = %d, want 6", got)
	}
	if got := a.CharCount(true); got != 28 {
		t.Errorf("CharCount(true) = %d, want 28", got)
	}
	if got := a.CharCount(false); got != 23 {
		t.Errorf("CharCount(false) = %d, want 23", got)
	}
	if got := a.SentenceCount(); got != 2 {
		t.Errorf("SentenceCount() = %d, want 2", got)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"only spaces", "    ", 0},
		{"mixed whitespace only", " \t\n\r ", 0},
		{"single word", "hello", 1},
		{"leading and trailing", "  hello world  ", 2},
		{"collapsed runs", "a   b\t\tc\n\nd", 4},
		{"punctuation stays attached", "Hello, world!", 2},
		{"ascii separators split", "a\x1cb\x1dc\x1ed\x1fe", 5},
		{"invalid utf-8 is not whitespace", "\xff\xfe x", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.text).WordCount(); got != tt.want {
				t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCharCount(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		withSpaces    int
		withoutSpaces int
	}{
		{"empty", "", 0, 0},
		{"only spaces", "    ", 4, 0},
		{"tabs and newlines are kept", "a\tb\nc d", 7, 6},
		{"whitespace only without spaces", "\t\n", 2, 2},
		{"multibyte characters", "naïve café", 10, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.text)
			if got := a.CharCount(true); got != tt.withSpaces {
				t.Errorf("CharCount(true) = %d, want %d", got, tt.withSpaces)
			}
			if got := a.CharCount(false); got != tt.withoutSpaces {
				t.Errorf("CharCount(false) = %d, want %d", got, tt.withoutSpaces)
			}
		})
	}
}

func TestCharCount_OnlyRemovesASCIISpace(t *testing.T) {
	texts := []string{
		"one two  three",
		"tab\tseparated\tvalues",
		" mixed \t \n lines \n",
	}

	for _, text := range texts {
		a := New(text)
		want := a.CharCount(true) - strings.Count(text, " ")
		if got := a.CharCount(false); got != want {
			t.Errorf("CharCount(false) for %q = %d, want %d", text, got, want)
		}
	}
}

func TestSentenceCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"only spaces", "    ", 0},
		{"no period", "Hello world", 1},
		{"trailing period", "Hello world.", 1},
		{"two sentences", "Hello world. This is a test.", 2},
		{"only periods", "...", 0},
		{"periods and whitespace", " . \n . ", 0},
		{"exclamation and question are not boundaries", "One. Two! Three? Four.", 2},
		{"abbreviation splits", "Dr. Smith went home.", 2},
		{"no trailing period", "First. Second", 2},
		{"ascii separators are blank", "One.\x1c\x1f.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.text).SentenceCount(); got != tt.want {
				t.Errorf("SentenceCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	r := New("Cat cat dog.").Analyze()

	if r.Words != 3 {
		t.Errorf("Words = %d, want 3", r.Words)
	}
	if r.Chars != 12 {
		t.Errorf("Chars = %d, want 12", r.Chars)
	}
	if r.CharsNoSpaces != 10 {
		t.Errorf("CharsNoSpaces = %d, want 10", r.CharsNoSpaces)
	}
	if r.Sentences != 1 {
		t.Errorf("Sentences = %d, want 1", r.Sentences)
	}
	if r.UniqueWords() != 2 {
		t.Errorf("UniqueWords() = %d, want 2", r.UniqueWords())
	}
	if r.Frequency["cat"] != 2 || r.Frequency["dog."] != 1 {
		t.Errorf("Frequency = %v, want cat:2 dog.:1", r.Frequency)
	}
}

func TestQueriesDoNotMutateText(t *testing.T) {
	text := "Some Mixed CASE text. With two sentences."
	a := New(text)

	a.WordCount()
	a.CharCount(false)
	a.SentenceCount()
	a.WordFrequency()
	a.Analyze()

	if a.Text() != text {
		t.Errorf("Text() changed to %q, want %q", a.Text(), text)
	}
}

func TestConcurrentQueries(t *testing.T) {
	a := New("the quick brown fox jumps over the lazy dog. the end.")
	want := a.Analyze()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := a.Analyze()
			if got.Words != want.Words || got.Sentences != want.Sentences || got.Chars != want.Chars {
				t.Errorf("concurrent Analyze() = %+v, want %+v", got, want)
			}
		}()
	}
	wg.Wait()
}
