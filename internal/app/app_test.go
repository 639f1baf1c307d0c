package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// testEnv isolates HOME, the config directory and the history database.
type testEnv struct {
	dir       string
	configDir string
	dbPath    string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:       dir,
		configDir: filepath.Join(dir, "config"),
		dbPath:    filepath.Join(dir, "history.db"),
	}
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", env.configDir)
	t.Setenv("TEXTSTAT_COLOR", "never")
	return env
}

// writeConfig writes a config.yaml into the isolated config directory.
func (e *testEnv) writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := filepath.Join(e.configDir, "textstat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

// writeFile writes a text file under the test directory and returns its path.
func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// resetFlags restores every flag to its default so that commands can be
// executed repeatedly within one test binary.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with args and stdin, returning
// captured stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(RootCmd)

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)
	RootCmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{} // nil would make cobra fall back to os.Args
	}
	RootCmd.SetArgs(args)

	err := RootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
