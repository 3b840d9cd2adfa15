package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pageorder/internal/config"
	"github.com/roach88/pageorder/internal/ir"
	"github.com/roach88/pageorder/internal/store"
	"github.com/roach88/pageorder/internal/testutil"
)

// recordOnce records input into dbPath with deterministic run IDs.
func recordOnce(t *testing.T, ids store.IDGenerator, format, dbPath, input string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	opts := &RecordOptions{
		RootOptions: &RootOptions{Format: format},
		IDGenerator: ids,
	}
	cmd := newRecordCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, input})
	err := cmd.Execute()
	return buf.String(), err
}

func TestRecordCommand_FirstRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	ids := testutil.NewSequentialIDGenerator("run")

	output, err := recordOnce(t, ids, "text", dbPath, examplePuzzle)
	require.NoError(t, err)

	assert.Equal(t, "Recorded run run-0001 (seq 1)\n"+
		"Total: 143 (3 of 6 updates compliant)\n", output)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.ReadRun(t.Context(), "run-0001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), run.Seq)
	assert.Equal(t, testutil.ExampleTotal, run.Total)
	assert.Equal(t, 3, run.CompliantCount)
	assert.Equal(t, 21, run.RuleCount)
	assert.Equal(t, 6, run.UpdateCount)
	assert.Equal(t, examplePuzzle, run.Source)
	assert.Equal(t, ir.MustPuzzleHash(testutil.ExamplePuzzle()), run.PuzzleHash)
	require.Len(t, run.Verdicts, 6)
	for i, want := range testutil.ExampleCompliance {
		assert.Equal(t, want, run.Verdicts[i].Compliant, "verdict %d", i)
	}
}

func TestRecordCommand_ReportsPreviousRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	ids := testutil.NewSequentialIDGenerator("run")

	_, err := recordOnce(t, ids, "text", dbPath, examplePuzzle)
	require.NoError(t, err)

	// Same rules and updates in another format hash identically
	output, err := recordOnce(t, ids, "text", dbPath, examplePuzzleYAML)
	require.NoError(t, err)
	assert.Contains(t, output, "Recorded run run-0002 (seq 2)")
	assert.Contains(t, output, "Previous run of this puzzle: run-0001 (seq 1), total 143")
}

func TestRecordCommand_DifferentPuzzleHasNoPrevious(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	ids := testutil.NewSequentialIDGenerator("run")

	_, err := recordOnce(t, ids, "text", dbPath, examplePuzzle)
	require.NoError(t, err)

	other := writePuzzle(t, "1|2\n\n1,5,2\n")
	output, err := recordOnce(t, ids, "text", dbPath, other)
	require.NoError(t, err)
	assert.Contains(t, output, "Recorded run run-0002 (seq 2)")
	assert.NotContains(t, output, "Previous run")
}

func TestRecordCommand_JSON(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	ids := testutil.NewSequentialIDGenerator("run")

	_, err := recordOnce(t, ids, "json", dbPath, examplePuzzle)
	require.NoError(t, err)
	output, err := recordOnce(t, ids, "json", dbPath, examplePuzzle)
	require.NoError(t, err)

	var response struct {
		Status string       `json:"status"`
		Data   RecordResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "run-0002", response.Data.RunID)
	assert.Equal(t, int64(2), response.Data.Seq)
	assert.Equal(t, int64(143), response.Data.Total)
	assert.Equal(t, 3, response.Data.CompliantCount)
	require.NotNil(t, response.Data.Previous)
	assert.Equal(t, "run-0001", response.Data.Previous.ID)
	assert.Equal(t, int64(1), response.Data.Previous.Seq)
}

func TestRecordCommand_NoDatabase(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRecordCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{examplePuzzle})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNoDatabase))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), ErrCodeDatabase)
}

func TestRecordCommand_DatabaseFromConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	buf := &bytes.Buffer{}
	cmd := NewRecordCommand(&RootOptions{
		Format: "text",
		Config: config.Config{DBPath: dbPath, Workers: 1},
	})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{examplePuzzle})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "(seq 1)")
	assert.FileExists(t, dbPath)
}

func TestRecordCommand_LoadError(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	output, err := recordOnce(t, testutil.NewSequentialIDGenerator("run"), "text", dbPath, "/nonexistent/puzzle.txt")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, output, "E005")
	assert.NoFileExists(t, dbPath)
}

func TestRecordCommand_PreconditionNotRecorded(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	input := writePuzzle(t, "1|2\n\n1,2\n")

	output, err := recordOnce(t, testutil.NewSequentialIDGenerator("run"), "text", dbPath, input)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, output, "E206")
	assert.NoFileExists(t, dbPath)
}
