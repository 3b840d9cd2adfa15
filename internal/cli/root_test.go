package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearConfigEnv unsets the PAGEORDER_* variables for the test's duration.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PAGEORDER_FORMAT", "PAGEORDER_DB", "PAGEORDER_WORKERS", "PAGEORDER_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "pageorder", cmd.Use)
	assert.Contains(t, cmd.Long, "ordering rules")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"check", "validate", "record", "history", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestCheckCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	checkCmd, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	explainFlag := checkCmd.Flags().Lookup("explain")
	require.NotNil(t, explainFlag)
	assert.Equal(t, "false", explainFlag.DefValue)

	workersFlag := checkCmd.Flags().Lookup("workers")
	require.NotNil(t, workersFlag)
	assert.Equal(t, "1", workersFlag.DefValue)
}

func TestRecordCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	recordCmd, _, err := cmd.Find([]string{"record"})
	require.NoError(t, err)

	dbFlag := recordCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	// --db falls back to PAGEORDER_DB, so default is empty
	assert.Equal(t, "", dbFlag.DefValue)

	require.NotNil(t, recordCmd.Flags().Lookup("workers"))
}

func TestHistoryCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	historyCmd, _, err := cmd.Find([]string{"history"})
	require.NoError(t, err)

	require.NotNil(t, historyCmd.Flags().Lookup("db"))
}

func TestTestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	testCmd, _, err := cmd.Find([]string{"test"})
	require.NoError(t, err)

	updateFlag := testCmd.Flags().Lookup("update")
	require.NotNil(t, updateFlag)
	assert.Equal(t, "false", updateFlag.DefValue)

	filterFlag := testCmd.Flags().Lookup("filter")
	require.NotNil(t, filterFlag)
}

func TestCommandHelp(t *testing.T) {
	cmd := NewRootCommand()

	assert.Contains(t, cmd.Short, "pageorder")
	assert.Contains(t, cmd.Long, "middle pages")
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	clearConfigEnv(t)

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "invalid", "check", examplePuzzle})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_FormatFromEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PAGEORDER_FORMAT", "json")

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"check", examplePuzzle})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"status":"ok"`)
}

func TestRootCommand_FlagOverridesEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PAGEORDER_FORMAT", "json")

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "text", "check", examplePuzzle})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "143\n", buf.String())
}

func TestRootCommand_InvalidEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PAGEORDER_WORKERS", "0")

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"check", examplePuzzle})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestRootCommand_VerboseLogsToStderr(t *testing.T) {
	clearConfigEnv(t)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"-v", "check", examplePuzzle})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "143")
	assert.Contains(t, errOut.String(), "level=DEBUG")
	assert.Contains(t, errOut.String(), "puzzle loaded")
}
