package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/textstat/internal/output"
	"github.com/blackwell-systems/textstat/internal/store"
)

var (
	historyLimit  int
	historySource string
	historyJSON   bool

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List saved analyses",
		Long: `List analyses saved with 'textstat analyze --save' or 'textstat watch --save',
newest first.`,
		Example: `  # Last 20 saved analyses
  textstat history

  # Everything saved for one file
  textstat history --source notes.txt --limit 0`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of analyses to show (0 for all)")
	historyCmd.Flags().StringVar(&historySource, "source", "", "only show analyses of this source")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print analyses as JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("invalid limit: %d (must not be negative)", historyLimit)
	}

	out := cmd.OutOrStdout()

	exists, err := historyExists()
	if err != nil {
		return err
	}
	if !exists {
		if historyJSON {
			return writeJSON(out, []*store.Analysis{})
		}
		fmt.Fprint(out, output.RenderHistoryTable(nil))
		fmt.Fprintln(out, "Run 'textstat analyze FILE --save' to record one.")
		return nil
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	source := historySource
	if source != "" {
		if source, err = resolveSource(source); err != nil {
			return err
		}
	}

	var analyses []*store.Analysis
	if source != "" {
		analyses, err = st.ListAnalysesBySource(source)
		if err == nil && historyLimit > 0 && len(analyses) > historyLimit {
			analyses = analyses[:historyLimit]
		}
	} else {
		analyses, err = st.ListAnalyses(historyLimit)
	}
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	if historyJSON {
		if analyses == nil {
			analyses = []*store.Analysis{}
		}
		return writeJSON(out, analyses)
	}

	fmt.Fprint(out, output.RenderHistoryTable(analyses))
	return nil
}
