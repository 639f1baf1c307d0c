package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/textstat/internal/analyzer"
	"github.com/blackwell-systems/textstat/internal/output"
	"github.com/blackwell-systems/textstat/internal/store"
)

// Values accepted by --metric
const (
	metricWords     = "words"
	metricChars     = "chars"
	metricSentences = "sentences"
	metricUnique    = "unique"
)

var (
	analyzeText     string
	analyzeJSON     bool
	analyzeSave     bool
	analyzeMetric   string
	analyzeNoSpaces bool

	analyzeCmd = &cobra.Command{
		Use:   "analyze [file|-]...",
		Short: "Count words, characters and sentences",
		Long: `Analyze one or more texts and print their statistics.

Text is read from each file argument, from stdin when the argument is '-' or
when no argument is given and input is piped, or from --text.

Use --metric to print a single number per input, which is convenient in
scripts. For the chars metric, --no-spaces drops ASCII spaces from the count;
tabs and newlines are always counted.`,
		Example: `  # Full report for a file
  textstat analyze notes.txt

  # Inline text
  textstat analyze --text "Hello world. This is a test."

  # Word count from a pipe
  cat notes.txt | textstat analyze --metric words

  # Characters without spaces
  textstat analyze notes.txt --metric chars --no-spaces

  # Save reports for several files
  textstat analyze *.md --save`,
		RunE: runAnalyze,
	}
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "analyze this text instead of a file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print reports as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "save reports to the history database")
	analyzeCmd.Flags().StringVar(&analyzeMetric, "metric", "", "print only one metric: words, chars, sentences or unique")
	analyzeCmd.Flags().BoolVar(&analyzeNoSpaces, "no-spaces", false, "exclude ASCII spaces from the chars metric")
}

// reportJSON is the --json shape of one analyzed input.
type reportJSON struct {
	ID     int64  `json:"id,omitempty"`
	Source string `json:"source"`
	analyzer.Report
	UniqueWords int `json:"unique_words"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := validateMetric(analyzeMetric); err != nil {
		return err
	}
	if analyzeJSON && analyzeMetric != "" {
		return fmt.Errorf("--json and --metric cannot be used together")
	}

	inputs, err := readInputs(cmd, args, analyzeText)
	if err != nil {
		return err
	}

	var st *store.Store
	if analyzeSave {
		st, err = openStore()
		if err != nil {
			return err
		}
		defer st.Close()
	}

	includeSpaces := settings.GetBool("include_spaces")
	if cmd.Flags().Changed("no-spaces") {
		includeSpaces = !analyzeNoSpaces
	}

	var progress *output.ProgressBar
	if len(inputs) > 1 {
		progress = output.NewProgress(len(inputs), "Analyzing files")
		progress.SetWriter(cmd.ErrOrStderr())
	}

	out := cmd.OutOrStdout()
	results := make([]reportJSON, 0, len(inputs))

	for i, in := range inputs {
		a := analyzer.New(in.text)
		report := a.Analyze()

		result := reportJSON{Source: in.source, Report: report, UniqueWords: report.UniqueWords()}
		if st != nil {
			id, err := st.SaveAnalysis(in.source, report)
			if err != nil {
				return fmt.Errorf("failed to save analysis of %s: %w", in.source, err)
			}
			result.ID = id
		}
		results = append(results, result)

		switch {
		case analyzeJSON:
			// printed once all inputs are done
		case analyzeMetric != "":
			value := metricValue(a, report, analyzeMetric, includeSpaces)
			if len(inputs) > 1 {
				fmt.Fprintf(out, "%d %s\n", value, in.source)
			} else {
				fmt.Fprintf(out, "%d\n", value)
			}
		default:
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, output.RenderReport(in.source, report))
			if result.ID != 0 {
				fmt.Fprint(out, output.RenderSaved(result.ID))
			}
		}

		if progress != nil {
			progress.Increment()
		}
	}

	if progress != nil {
		progress.Finish()
	}

	if (analyzeJSON || analyzeMetric != "") && st != nil {
		for _, r := range results {
			fmt.Fprint(cmd.ErrOrStderr(), output.RenderSaved(r.ID))
		}
	}

	if analyzeJSON {
		var v any = results
		if len(results) == 1 {
			v = results[0]
		}
		return writeJSON(out, v)
	}

	return nil
}

func validateMetric(metric string) error {
	switch metric {
	case "", metricWords, metricChars, metricSentences, metricUnique:
		return nil
	}
	return fmt.Errorf("invalid metric: %q (want words, chars, sentences or unique)", metric)
}

func metricValue(a *analyzer.TextAnalyzer, r analyzer.Report, metric string, includeSpaces bool) int {
	switch metric {
	case metricWords:
		return r.Words
	case metricChars:
		return a.CharCount(includeSpaces)
	case metricSentences:
		return r.Sentences
	default:
		return r.UniqueWords()
	}
}

func writeJSON(w io.Writer, v any) error {
	s, err := output.RenderJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, s)
	return err
}
