// Package output provides terminal output utilities for textstat.
//
// This package includes:
//   - Rendering for analysis reports, word-frequency tables and saved history
//   - A progress bar for multi-file runs and a spinner for daemon start/stop
//   - JSON rendering for --json output
//
// Tables are plain text padded by display width, so CJK and accented words
// line up. ANSI color is only emitted when IsColorEnabled reports true.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"github.com/blackwell-systems/textstat/internal/analyzer"
	"github.com/blackwell-systems/textstat/internal/store"
)

// ANSI codes used for headers and emphasis
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

var (
	colorMu   sync.RWMutex
	colorMode = "auto"
)

// SetColorMode selects "auto", "always" or "never". Unknown values behave
// like "auto".
func SetColorMode(mode string) {
	colorMu.Lock()
	defer colorMu.Unlock()
	colorMode = mode
}

// IsColorEnabled returns true if ANSI color codes should be emitted.
// In auto mode it checks that os.Stdout is a TTY and that NO_COLOR is unset.
func IsColorEnabled() bool {
	colorMu.RLock()
	mode := colorMode
	colorMu.RUnlock()

	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderReport renders the statistics block for one analyzed text.
func RenderReport(source string, r analyzer.Report) string {
	var sb strings.Builder

	label := func(name string) string {
		return colorize(colorBold, fmt.Sprintf("%-12s", name))
	}

	if source != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", label("Source:"), source))
	}
	sb.WriteString(fmt.Sprintf("%s %d\n", label("Words:"), r.Words))
	sb.WriteString(fmt.Sprintf("%s %d (%d without spaces)\n", label("Characters:"), r.Chars, r.CharsNoSpaces))
	sb.WriteString(fmt.Sprintf("%s %d\n", label("Sentences:"), r.Sentences))
	sb.WriteString(fmt.Sprintf("%s %d\n", label("Unique:"), r.UniqueWords()))

	return sb.String()
}

// RenderFrequencyTable renders ranked word counts. total is the word count
// of the whole text and drives the share column; pass 0 to omit it.
func RenderFrequencyTable(entries []analyzer.TermCount, total int) string {
	if len(entries) == 0 {
		return "No words found.\n"
	}

	const wordWidth = 24

	var sb strings.Builder

	// Header
	header := fmt.Sprintf("%-5s %s %8s", "Rank", padRight("Word", wordWidth), "Count")
	if total > 0 {
		header += fmt.Sprintf(" %7s", "Share")
	}
	sb.WriteString(colorize(colorBold, header))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", runewidth.StringWidth(header)))
	sb.WriteString("\n")

	// Rows
	for i, e := range entries {
		row := fmt.Sprintf("%-5d %s %8d", i+1, padRight(truncate(e.Word, wordWidth), wordWidth), e.Count)
		if total > 0 {
			row += fmt.Sprintf(" %6.1f%%", float64(e.Count)*100/float64(total))
		}
		sb.WriteString(row)
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderHistoryTable renders saved analyses in the order given.
func RenderHistoryTable(analyses []*store.Analysis) string {
	if len(analyses) == 0 {
		return "No saved analyses found.\n"
	}

	const sourceWidth = 28

	var sb strings.Builder

	// Header
	header := fmt.Sprintf("%-5s %s %7s %9s %7s  %s",
		"ID", padRight("Source", sourceWidth), "Words", "Sentences", "Unique", "Saved")
	sb.WriteString(colorize(colorBold, header))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("─", 80))
	sb.WriteString("\n")

	// Rows
	for _, a := range analyses {
		sb.WriteString(fmt.Sprintf("%-5d %s %7d %9d %7d  %s\n",
			a.ID,
			padRight(truncateLeft(a.Source, sourceWidth), sourceWidth),
			a.Words,
			a.Sentences,
			a.UniqueWords,
			colorize(colorGray, formatRelativeTime(a.CreatedAt))))
	}

	return sb.String()
}

// RenderSaved renders the confirmation line printed after --save.
func RenderSaved(id int64) string {
	return colorize(colorGreen, "✓") + fmt.Sprintf(" Saved as analysis %d\n", id)
}

// RenderJSON renders v as indented JSON followed by a newline.
func RenderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24/7), "week")
	case diff < 365*24*time.Hour:
		return plural(int(diff.Hours()/24/30), "month")
	default:
		return plural(int(diff.Hours()/24/365), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// truncate shortens s to maxWidth display columns, adding "..." if truncated.
func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// truncateLeft shortens s to maxWidth display columns by dropping its
// beginning, so file names at the end of long paths stay visible.
func truncateLeft(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	runes := []rune(s)
	width := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if width+w > maxWidth-3 {
			break
		}
		width += w
		start--
	}
	return "..." + string(runes[start:])
}

// padRight pads s with spaces to width display columns.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
