package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/textstat/internal/store"
)

// Sources recorded for text that does not come from a file.
const (
	sourceStdin  = "-"
	sourceInline = "args"
)

// errNoInput is returned when there is nothing to analyze and stdin is an
// interactive terminal.
var errNoInput = errors.New("no input: pass a file, '-' for stdin, or --text")

// input is one text to analyze and where it came from.
type input struct {
	source string
	text   string
}

// readInputs resolves the texts named by a command's arguments. Inline text
// from --text cannot be combined with file arguments. With no arguments,
// piped stdin is read.
func readInputs(cmd *cobra.Command, args []string, inline string) ([]input, error) {
	if cmd.Flags().Changed("text") {
		if len(args) > 0 {
			return nil, fmt.Errorf("cannot combine --text with file arguments")
		}
		return []input{{source: sourceInline, text: inline}}, nil
	}

	if len(args) == 0 {
		if isInteractive(cmd.InOrStdin()) {
			return nil, errNoInput
		}
		args = []string{sourceStdin}
	}

	inputs := make([]input, 0, len(args))
	stdinUsed := false
	for _, arg := range args {
		if arg == sourceStdin {
			if stdinUsed {
				return nil, fmt.Errorf("stdin can only be read once")
			}
			stdinUsed = true

			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			inputs = append(inputs, input{source: sourceStdin, text: string(data)})
			continue
		}

		data, err := os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		source, err := resolveSource(arg)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input{source: source, text: string(data)})
	}

	return inputs, nil
}

// resolveSource returns the source recorded for a file argument: its
// absolute path, the same form the watcher records. Stdin and inline
// sources are returned unchanged.
func resolveSource(source string) (string, error) {
	if source == sourceStdin || source == sourceInline {
		return source, nil
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", source, err)
	}
	return abs, nil
}

// isInteractive reports whether r is a terminal, i.e. nothing was piped in.
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// openStore opens the history database, creating the schema if needed.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}

	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to create database schema: %w", err)
	}

	return st, nil
}

// historyExists reports whether the history database file has been created.
func historyExists() (bool, error) {
	path, err := getDBPath()
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check database: %w", err)
	}
	return true, nil
}

// topWordsSetting returns the --top flag if given, else the configured value.
func topWordsSetting(cmd *cobra.Command, flagValue int) (int, error) {
	if cmd.Flags().Changed("top") {
		if flagValue < 0 {
			return 0, fmt.Errorf("invalid top: %d (must not be negative)", flagValue)
		}
		return flagValue, nil
	}
	return settings.GetInt("top_words"), nil
}
