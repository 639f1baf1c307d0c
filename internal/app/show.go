package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/textstat/internal/analyzer"
	"github.com/blackwell-systems/textstat/internal/output"
	"github.com/blackwell-systems/textstat/internal/store"
)

var (
	showTop    int
	showDelete bool
	showJSON   bool

	showCmd = &cobra.Command{
		Use:   "show ID",
		Short: "Show or delete a saved analysis",
		Long: `Print a saved analysis with its most frequent words, or delete it with
--delete. IDs are listed by 'textstat history'.`,
		Example: `  # Show analysis 3
  textstat show 3

  # Show every word of analysis 3
  textstat show 3 --top 0

  # Delete analysis 3
  textstat show 3 --delete`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
)

func init() {
	showCmd.Flags().IntVar(&showTop, "top", 10, "number of words to show (0 for all)")
	showCmd.Flags().BoolVar(&showDelete, "delete", false, "delete the analysis instead of showing it")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the analysis as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid analysis ID: %q", args[0])
	}

	top, err := topWordsSetting(cmd, showTop)
	if err != nil {
		return err
	}

	exists, err := historyExists()
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no saved analysis with ID %d", id)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	if showDelete {
		if err := st.DeleteAnalysis(id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no saved analysis with ID %d", id)
			}
			return fmt.Errorf("failed to delete analysis %d: %w", id, err)
		}
		fmt.Fprintf(out, "Deleted analysis %d\n", id)
		return nil
	}

	a, err := st.GetAnalysis(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no saved analysis with ID %d", id)
		}
		return fmt.Errorf("failed to get analysis %d: %w", id, err)
	}

	freq, err := st.GetFrequencies(id)
	if err != nil {
		return fmt.Errorf("failed to get frequencies for analysis %d: %w", id, err)
	}
	report := a.Report(freq)

	if showJSON {
		return writeJSON(out, reportJSON{
			ID:          a.ID,
			Source:      a.Source,
			Report:      report,
			UniqueWords: a.UniqueWords,
		})
	}

	fmt.Fprintf(out, "Analysis %d, saved %s\n\n", a.ID, a.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprint(out, output.RenderReport(a.Source, report))
	fmt.Fprintln(out)
	fmt.Fprint(out, output.RenderFrequencyTable(analyzer.RankFrequency(freq, top), a.Words))

	return nil
}
