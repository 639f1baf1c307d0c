package output_test

import (
	"fmt"

	"github.com/blackwell-systems/textstat/internal/analyzer"
	"github.com/blackwell-systems/textstat/internal/output"
)

func ExampleRenderReport() {
	output.SetColorMode("never")
	defer output.SetColorMode("auto")

	r := analyzer.New("Hello world. This is a test.").Analyze()
	fmt.Print(output.RenderReport("notes.txt", r))
	// Output:
	// Source:      notes.txt
	// Words:       6
	// Characters:  28 (23 without spaces)
	// Sentences:   2
	// Unique:      6
}

func ExampleRenderFrequencyTable() {
	output.SetColorMode("never")
	defer output.SetColorMode("auto")

	a := analyzer.New("b a a c c c")
	fmt.Print(output.RenderFrequencyTable(a.TopWords(0), a.WordCount()))
	// Output:
	// Rank  Word                        Count   Share
	// ───────────────────────────────────────────────
	// 1     c                               3   50.0%
	// 2     a                               2   33.3%
	// 3     b                               1   16.7%
}
