package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/textstat/internal/analyzer"
	"github.com/blackwell-systems/textstat/internal/output"
)

var (
	freqText string
	freqTop  int
	freqJSON bool

	freqCmd = &cobra.Command{
		Use:   "freq [file|-]",
		Short: "Show word frequencies",
		Long: `Tabulate how often each word occurs.

Words are lower-cased before counting and split on whitespace only, so
punctuation stays attached ("end." and "end" are different words). Rows are
ordered by count, then alphabetically.

The number of rows defaults to top_words from the config file (10). Use
--top 0 to show every word.`,
		Example: `  # Ten most frequent words in a file
  textstat freq notes.txt

  # Every word, as JSON
  textstat freq notes.txt --top 0 --json

  # Inline text
  textstat freq --text "cat cat dog"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFreq,
	}
)

func init() {
	freqCmd.Flags().StringVar(&freqText, "text", "", "analyze this text instead of a file")
	freqCmd.Flags().IntVar(&freqTop, "top", 10, "number of words to show (0 for all)")
	freqCmd.Flags().BoolVar(&freqJSON, "json", false, "print frequencies as JSON")
}

func runFreq(cmd *cobra.Command, args []string) error {
	top, err := topWordsSetting(cmd, freqTop)
	if err != nil {
		return err
	}

	inputs, err := readInputs(cmd, args, freqText)
	if err != nil {
		return err
	}
	in := inputs[0]

	a := analyzer.New(in.text)
	entries := a.TopWords(top)

	out := cmd.OutOrStdout()
	if freqJSON {
		return writeJSON(out, entries)
	}

	fmt.Fprint(out, output.RenderFrequencyTable(entries, a.WordCount()))

	if unique := len(a.WordFrequency()); len(entries) < unique {
		fmt.Fprintf(out, "\nShowing %d of %d distinct words (use --top 0 for all)\n", len(entries), unique)
	}

	return nil
}
