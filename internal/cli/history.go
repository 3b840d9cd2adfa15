package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/pageorder/internal/ir"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
}

// HistoryResult is the JSON payload of history without a run ID.
type HistoryResult struct {
	Runs  []ir.Run `json:"runs"`
	Total int      `json:"total"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded runs or show one run",
		Long: `Without arguments, list every recorded run in seq order.
With a run ID, show that run and each of its verdicts.

Exit codes:
  0 - Success
  2 - Command error (database or run not found)

Examples:
  pageorder history --db ./runs.db
  pageorder history --db ./runs.db 0192f0c4-6b1e-7a3c-9d2e-5f7a8b9c0d1e`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runShowRun(opts, args[0], cmd)
			}
			return runListRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $PAGEORDER_DB)")

	return cmd
}

func runListRuns(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	dbPath, err := resolveDatabase(opts.RootOptions, opts.Database, cmd)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "no database", err)
	}

	st, err := openExistingStore(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(HistoryResult{Runs: runs, Total: len(runs)})
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tRUN ID\tTOTAL\tCOMPLIANT\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d/%d\t%s\n", r.Seq, r.ID, r.Total, r.CompliantCount, r.UpdateCount, r.Source)
	}
	return tw.Flush()
}

func runShowRun(opts *HistoryOptions, runID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	dbPath, err := resolveDatabase(opts.RootOptions, opts.Database, cmd)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "no database", err)
	}

	st, err := openExistingStore(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	run, err := st.ReadRun(ctx, runID)
	if errors.Is(err, sql.ErrNoRows) {
		_ = formatter.Error(ErrCodeRunNotFound, fmt.Sprintf("run %s not found", runID), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("run %s not found", runID))
	}
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(run)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Run %s (seq %d)\n", run.ID, run.Seq)
	fmt.Fprintf(w, "Source: %s\n", run.Source)
	fmt.Fprintf(w, "Puzzle: %s\n", run.PuzzleHash)
	fmt.Fprintf(w, "Rules: %d\n", run.RuleCount)
	fmt.Fprintln(w)
	writeVerdicts(formatter, run.Verdicts, nil)
	fmt.Fprintf(w, "Total: %d (%d of %d updates compliant)\n", run.Total, run.CompliantCount, run.UpdateCount)
	return nil
}
