package commands

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/xw3d/internal/printer"
	"github.com/dyluth/xw3d/pkg/crossword"
)

const greetingsJSON = `{
  "name": "greetings",
  "words": [
    {"word": "HELLO", "direction": "X", "start": [0, 0, 0], "description": "A greeting"},
    {"word": "OXXXX", "direction": "Y", "start": [4, 0, 0], "description": "Kisses"}
  ]
}`

// execute runs the CLI with fresh flag values and captured output. The
// configuration file does not exist, so defaults apply.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := printer.Out, printer.Err
	printer.Out, printer.Err = out, errOut
	t.Cleanup(func() { printer.Out, printer.Err = prevOut, prevErr })

	resetFlags(rootCmd)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "xw3d.yml")}, args...))
	err := Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand_ShowsHelpWhenNoSubcommand(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	defer rootCmd.SetOut(nil)

	_, _, err := execute(t)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Usage:")
	assert.Contains(t, buf.String(), "xw3d")
}

func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	rootCmd.SetErr(new(bytes.Buffer))
	defer rootCmd.SetErr(nil)

	_, _, err := execute(t, "--goal", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestInitCommand(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, _, err := execute(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ xw3d.yml")
	assert.Contains(t, out, "✓ example.json")

	_, errOut, err := execute(t, "init")
	require.Error(t, err)
	assert.Equal(t, "project already initialized", err.Error())
	assert.Contains(t, errOut, "xw3d init --force")

	_, _, err = execute(t, "init", "--force")
	require.NoError(t, err)
}

func TestCheckCommand(t *testing.T) {
	t.Run("valid puzzle", func(t *testing.T) {
		out, _, err := execute(t, "check", writeFile(t, "g.json", greetingsJSON))
		require.NoError(t, err)
		assert.Contains(t, out, "Words in 'greetings'")
		assert.Contains(t, out, "would export as greetings.json")
	})

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") },
			wantErr: "Couldn't open the file",
		},
		{
			name:    "not json",
			path:    func(t *testing.T) string { return writeFile(t, "bad.json", "{") },
			wantErr: "Invalid file",
		},
		{
			name: "conflicting words",
			path: func(t *testing.T) string {
				return writeFile(t, "bad.json", strings.Replace(greetingsJSON, "OXXXX", "AXXXX", 1))
			},
			wantErr: "Invalid crossword",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, err := execute(t, "check", tt.path(t))
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestShowCommand(t *testing.T) {
	path := writeFile(t, "g.json", greetingsJSON)

	t.Run("layers", func(t *testing.T) {
		out, _, err := execute(t, "show", path)
		require.NoError(t, err)
		assert.Contains(t, out, "z=0  x=0..4")
		assert.Contains(t, out, "   0  HELLO")
		assert.Contains(t, out, "  -4  ....X")
	})

	t.Run("missing layer", func(t *testing.T) {
		_, _, err := execute(t, "show", path, "--layer", "3")
		require.Error(t, err)
		assert.Equal(t, "layer not found", err.Error())
	})

	t.Run("jsonl", func(t *testing.T) {
		out, _, err := execute(t, "show", path, "--output", "jsonl")
		require.NoError(t, err)

		lines := 0
		scanner := bufio.NewScanner(strings.NewReader(out))
		for scanner.Scan() {
			var cell map[string]interface{}
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &cell))
			lines++
		}
		assert.Equal(t, 9, lines)
	})

	t.Run("bad output format", func(t *testing.T) {
		_, _, err := execute(t, "show", path, "--output", "xml")
		assert.Equal(t, "invalid output format", err.Error())
	})
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	compact := strings.Join(strings.Fields(greetingsJSON), " ")

	out, _, err := execute(t, "export", writeFile(t, "download.json", compact), "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported")

	data, err := os.ReadFile(filepath.Join(dir, "greetings.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"name\": \"greetings\",\n")

	p, err := crossword.LoadFile(filepath.Join(dir, "greetings.json"), crossword.CurrentPolicy())
	require.NoError(t, err)
	assert.Equal(t, "HELLO", p.Words[0].Text)

	t.Run("legacy policy from config", func(t *testing.T) {
		cfg := writeFile(t, "xw3d.yml", "version: \"1.0\"\nload:\n  policy: legacy\n")
		far := strings.Replace(greetingsJSON, "[0, 0, 0]", "[20, 0, 0]", 1)

		_, _, err := execute(t, "--config", cfg, "export", writeFile(t, "far.json", far), "--out", dir)
		require.Error(t, err)
		assert.Equal(t, "Invalid file", err.Error())
	})
}

func TestAuthorCommand(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, "edits.txt", "name cube\nplace X 0 0 0 cube Six faces\nplace Z 3 0 0 edge Where faces meet\nsave\n")

	out, _, err := execute(t, "author", "--script", script, "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 words, save enabled")

	p, err := crossword.LoadFile(filepath.Join(dir, "cube.json"), crossword.CurrentPolicy())
	require.NoError(t, err)
	assert.Len(t, p.Words, 2)

	t.Run("script errors stop the session", func(t *testing.T) {
		bad := writeFile(t, "bad.txt", "name cube\ndelete 7\n")
		_, errOut, err := execute(t, "author", "--script", bad)
		require.Error(t, err)
		assert.Equal(t, "session stopped", err.Error())
		assert.Contains(t, errOut, "line 2")
	})

	t.Run("edits an existing file", func(t *testing.T) {
		edits := writeFile(t, "edits.txt", "word 1 AXXXX\nundo\nsave\n")
		out, _, err := execute(t, "author", writeFile(t, "g.json", greetingsJSON), "--script", edits, "--out", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "invalid [0 1]")
		assert.Contains(t, out, "saved "+filepath.Join(dir, "greetings.json"))
	})
}

func TestPlayCommand(t *testing.T) {
	path := writeFile(t, "g.json", greetingsJSON)
	answers := writeFile(t, "answers.txt", "guess 0 hello\nguess 1 oxxxx\n")

	out, _, err := execute(t, "play", path, "--script", answers)
	require.NoError(t, err)
	assert.Contains(t, out, "2 words, solved")
	assert.Contains(t, out, "Solved 'greetings'")

	undo := writeFile(t, "undo.txt", "undo\n")
	_, errOut, err := execute(t, "play", path, "--script", undo)
	require.Error(t, err)
	assert.Contains(t, errOut, "not available while solving")
}
