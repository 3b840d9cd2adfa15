package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pageorder/internal/config"
	"github.com/roach88/pageorder/internal/ir"
)

// Shared puzzle fixtures, relative to this package.
const (
	examplePuzzle     = "../../testdata/puzzles/example.txt"
	examplePuzzleYAML = "../../testdata/puzzles/example.yaml"
	examplePuzzleCUE  = "../../testdata/puzzles/example.cue"
)

// writePuzzle writes a text puzzle to a temp file and returns its path.
func writePuzzle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzle.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCheckCommand_Example(t *testing.T) {
	for _, input := range []string{examplePuzzle, examplePuzzleYAML, examplePuzzleCUE} {
		t.Run(filepath.Ext(input), func(t *testing.T) {
			buf := &bytes.Buffer{}
			cmd := NewCheckCommand(&RootOptions{Format: "text"})
			cmd.SetOut(buf)
			cmd.SetArgs([]string{input})

			require.NoError(t, cmd.Execute())
			assert.Equal(t, "143\n", buf.String())
		})
	}
}

func TestCheckCommand_Explain(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--explain", examplePuzzle})

	require.NoError(t, cmd.Execute())

	expected := "✓ [0] 75,47,61,53,29  middle 61\n" +
		"✓ [1] 97,61,53,29,13  middle 53\n" +
		"✓ [2] 75,29,13  middle 29\n" +
		"✗ [3] 75,97,47,61,53  breaks 97|75\n" +
		"✗ [4] 61,13,29  breaks 29|13\n" +
		"✗ [5] 97,13,75,29,47  breaks 75|13\n" +
		"Total: 143 (3 of 6 updates compliant)\n"
	assert.Equal(t, expected, buf.String())
}

func TestCheckCommand_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--explain", "--workers", "3", examplePuzzle})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(143), resp.Data.Total)
	assert.Equal(t, 3, resp.Data.CompliantCount)
	assert.Equal(t, 6, resp.Data.UpdateCount)
	assert.Len(t, resp.Data.PuzzleHash, 64)
	require.Len(t, resp.Data.Verdicts, 6)
	assert.Equal(t, map[int]string{3: "97|75", 4: "29|13", 5: "75|13"}, resp.Data.Violations)
}

func TestCheckCommand_WorkersFromConfig(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &RootOptions{Format: "text", Config: config.Config{Workers: 4}}
	cmd := NewCheckCommand(opts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{examplePuzzle})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "143\n", buf.String())
}

func TestCheckCommand_NoCompliantUpdates(t *testing.T) {
	path := writePuzzle(t, "1|2\n\n2,1\n2,5,1\n")

	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "0\n", buf.String())
}

func TestCheckCommand_EvenCompliantUpdate(t *testing.T) {
	path := writePuzzle(t, "1|2\n\n1,5,2\n1,2\n")

	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E206", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "update 1 has length 2")
}

func TestCheckCommand_EvenNonCompliantUpdateIgnored(t *testing.T) {
	path := writePuzzle(t, "1|2\n\n1,5,2\n2,1\n")

	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "5\n", buf.String())
}

func TestCheckCommand_InputNotFound(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.txt")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E005]")
}

func TestCheckCommand_MalformedInput(t *testing.T) {
	path := writePuzzle(t, "47|53\n97-13\n\n75,47,61\n")

	buf := &bytes.Buffer{}
	cmd := NewCheckCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E201]")
}

func TestCheckCommand_MissingArgs(t *testing.T) {
	cmd := NewCheckCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestFormatPages(t *testing.T) {
	assert.Equal(t, "75,47,61", formatPages(ir.Update{75, 47, 61}))
	assert.Equal(t, "", formatPages(nil))
}
