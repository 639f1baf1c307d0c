package app

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAnalyzeCommand_Flags(t *testing.T) {
	for _, name := range []string{"text", "json", "save", "metric", "no-spaces"} {
		if analyzeCmd.Flags().Lookup(name) == nil {
			t.Errorf("flag %s not defined", name)
		}
	}
}

func TestAnalyze_InlineText(t *testing.T) {
	setupTestEnv(t)

	out, _, err := executeCommand(t, "", "analyze", "--text", "Hello world. This is a test.")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	for _, want := range []string{
		"Source:      args",
		"Words:       6",
		"Characters:  28 (23 without spaces)",
		"Sentences:   2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("analyze output missing %q\nGot:\n%s", want, out)
		}
	}
}

func TestAnalyze_EmptyAndBlankText(t *testing.T) {
	setupTestEnv(t)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{"Words:       0", "Characters:  0 (0 without spaces)", "Sentences:   0"}},
		{"four spaces", "    ", []string{"Words:       0", "Characters:  4 (0 without spaces)", "Sentences:   0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCommand(t, "", "analyze", "--text", tt.text)
			if err != nil {
				t.Fatalf("analyze error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("analyze output missing %q\nGot:\n%s", want, out)
				}
			}
		})
	}
}

func TestAnalyze_Metric(t *testing.T) {
	setupTestEnv(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"words from stdin", "one two  three\n", []string{"--metric", "words"}, "3\n"},
		{"chars with spaces", "a b\tc", []string{"--metric", "chars"}, "5\n"},
		{"chars without spaces keeps tabs", "a b\tc", []string{"--metric", "chars", "--no-spaces"}, "4\n"},
		{"sentences without period", "Hello world", []string{"--metric", "sentences"}, "1\n"},
		{"unique is case-insensitive", "Cat cat dog", []string{"--metric", "unique"}, "2\n"},
		{"explicit stdin dash", "x y", []string{"-", "--metric", "words"}, "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"analyze"}, tt.args...)
			out, _, err := executeCommand(t, tt.stdin, args...)
			if err != nil {
				t.Fatalf("analyze error: %v", err)
			}
			if out != tt.want {
				t.Errorf("analyze %v = %q, want %q", tt.args, out, tt.want)
			}
		})
	}
}

func TestAnalyze_IncludeSpacesFromConfig(t *testing.T) {
	env := setupTestEnv(t)
	env.writeConfig(t, "include_spaces: false\n")

	out, _, err := executeCommand(t, "", "analyze", "--text", "a b", "--metric", "chars")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}
	if out != "2\n" {
		t.Errorf("chars with include_spaces=false = %q, want %q", out, "2\n")
	}
}

func TestAnalyze_InvalidMetric(t *testing.T) {
	setupTestEnv(t)

	_, _, err := executeCommand(t, "", "analyze", "--text", "x", "--metric", "paragraphs")
	if err == nil || !strings.Contains(err.Error(), "invalid metric") {
		t.Errorf("expected invalid metric error, got %v", err)
	}
}

func TestAnalyze_JSONAndMetricConflict(t *testing.T) {
	setupTestEnv(t)

	if _, _, err := executeCommand(t, "", "analyze", "--text", "x", "--metric", "words", "--json"); err == nil {
		t.Error("expected error combining --json and --metric")
	}
}

func TestAnalyze_TextWithFileArgument(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "a.txt", "a")

	_, _, err := executeCommand(t, "", "analyze", path, "--text", "x")
	if err == nil || !strings.Contains(err.Error(), "cannot combine") {
		t.Errorf("expected combine error, got %v", err)
	}
}

func TestAnalyze_MissingFile(t *testing.T) {
	setupTestEnv(t)

	if _, _, err := executeCommand(t, "", "analyze", "/nonexistent/file.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestAnalyze_MultipleFiles(t *testing.T) {
	env := setupTestEnv(t)
	first := env.writeFile(t, "first.txt", "one two")
	second := env.writeFile(t, "second.txt", "three")

	out, errOut, err := executeCommand(t, "", "analyze", first, second, "--metric", "words")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	want := "2 " + first + "\n1 " + second + "\n"
	if out != want {
		t.Errorf("analyze output = %q, want %q", out, want)
	}
	if !strings.Contains(errOut, "100%") {
		t.Errorf("expected progress on stderr, got %q", errOut)
	}
}

func TestAnalyze_JSON(t *testing.T) {
	setupTestEnv(t)

	out, _, err := executeCommand(t, "", "analyze", "--text", "cat cat dog.", "--json")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	var got struct {
		Source      string         `json:"source"`
		Words       int            `json:"words"`
		Chars       int            `json:"chars"`
		Sentences   int            `json:"sentences"`
		UniqueWords int            `json:"unique_words"`
		Frequency   map[string]int `json:"frequency"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}

	if got.Source != "args" || got.Words != 3 || got.Chars != 12 || got.Sentences != 1 || got.UniqueWords != 2 {
		t.Errorf("JSON report = %+v", got)
	}
	if got.Frequency["cat"] != 2 || got.Frequency["dog."] != 1 {
		t.Errorf("JSON frequency = %v", got.Frequency)
	}
}

func TestAnalyze_JSONMultipleIsArray(t *testing.T) {
	env := setupTestEnv(t)
	first := env.writeFile(t, "first.txt", "one")
	second := env.writeFile(t, "second.txt", "two words")

	out, _, err := executeCommand(t, "", "analyze", first, second, "--json")
	if err != nil {
		t.Fatalf("analyze error: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON array: %v\n%s", err, out)
	}
	if len(got) != 2 {
		t.Errorf("got %d reports, want 2", len(got))
	}
}
