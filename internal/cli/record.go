package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/pageorder/internal/ir"
	"github.com/roach88/pageorder/internal/loader"
	"github.com/roach88/pageorder/internal/store"
)

// Error codes for run history commands.
const (
	ErrCodeDatabase    = "E_DATABASE"
	ErrCodeRunNotFound = "E_RUN_NOT_FOUND"
)

// errNoDatabase is returned when neither --db nor PAGEORDER_DB is set.
var errNoDatabase = errors.New("database path required: pass --db or set PAGEORDER_DB")

// RecordOptions holds flags for the record command.
type RecordOptions struct {
	*RootOptions
	Database string
	Workers  int

	// IDGenerator allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator store.IDGenerator
}

// PreviousRun summarizes the last recorded run of the same puzzle.
type PreviousRun struct {
	ID    string `json:"id"`
	Seq   int64  `json:"seq"`
	Total int64  `json:"total"`
}

// RecordResult is the JSON payload of the record command.
type RecordResult struct {
	RunID          string       `json:"run_id"`
	Seq            int64        `json:"seq"`
	PuzzleHash     string       `json:"puzzle_hash"`
	CompliantCount int          `json:"compliant_count"`
	Total          int64        `json:"total"`
	Previous       *PreviousRun `json:"previous,omitempty"`
}

// NewRecordCommand creates the record command.
func NewRecordCommand(rootOpts *RootOptions) *cobra.Command {
	return newRecordCommand(&RecordOptions{RootOptions: rootOpts})
}

func newRecordCommand(opts *RecordOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <input>",
		Short: "Evaluate a puzzle and store the run",
		Long: `Evaluate a puzzle like check does and append the run, with every
verdict, to a SQLite database (created if it doesn't exist).

The previous run of the same puzzle, identified by content hash, is
reported alongside the new one.

Example:
  pageorder record --db ./runs.db puzzle.txt
  PAGEORDER_DB=./runs.db pageorder record puzzle.yaml --workers 4`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $PAGEORDER_DB)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "number of goroutines validating updates")

	return cmd
}

func runRecord(opts *RecordOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	dbPath, err := resolveDatabase(opts.RootOptions, opts.Database, cmd)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "no database", err)
	}

	res, err := loader.Load(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	report, _, err := evaluatePuzzle(ctx, res.Puzzle, resolveWorkers(opts.RootOptions, opts.Workers, cmd))
	if err != nil {
		return outputEvaluateError(formatter, err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	prev, found, err := st.LatestRunForPuzzle(ctx, res.Hash)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read previous run", err)
	}

	ids := opts.IDGenerator
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}

	run := ir.Run{
		ID:             ids.Generate(),
		PuzzleHash:     res.Hash,
		Source:         res.Source,
		RuleCount:      len(res.Puzzle.Rules),
		UpdateCount:    len(res.Puzzle.Updates),
		CompliantCount: report.CompliantCount,
		Total:          report.Total,
		Verdicts:       report.Verdicts,
	}
	seq, err := st.WriteRun(ctx, run)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to record run", err)
	}
	slog.Info("run recorded", "run_id", run.ID, "seq", seq, "total", run.Total)

	result := RecordResult{
		RunID:          run.ID,
		Seq:            seq,
		PuzzleHash:     run.PuzzleHash,
		CompliantCount: run.CompliantCount,
		Total:          run.Total,
	}
	if found {
		result.Previous = &PreviousRun{ID: prev.ID, Seq: prev.Seq, Total: prev.Total}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Recorded run %s (seq %d)\n", result.RunID, result.Seq)
	fmt.Fprintf(w, "Total: %d (%d of %d updates compliant)\n", result.Total, result.CompliantCount, run.UpdateCount)
	if result.Previous != nil {
		fmt.Fprintf(w, "Previous run of this puzzle: %s (seq %d), total %d\n",
			result.Previous.ID, result.Previous.Seq, result.Previous.Total)
	}
	return nil
}

// resolveDatabase returns the --db flag if given, otherwise PAGEORDER_DB.
func resolveDatabase(opts *RootOptions, flagValue string, cmd *cobra.Command) (string, error) {
	path := flagValue
	if !cmd.Flags().Changed("db") && path == "" {
		path = opts.Config.DBPath
	}
	if path == "" {
		return "", errNoDatabase
	}
	return path, nil
}

// openExistingStore opens a database that must already exist.
func openExistingStore(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found: %s", path)
	}
	return store.Open(path)
}
