package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/pageorder/internal/ir"
	"github.com/roach88/pageorder/internal/loader"
	"github.com/roach88/pageorder/internal/ordering"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Explain bool // list every verdict
	Workers int  // parallel validation goroutines
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Source         string         `json:"source"`
	PuzzleHash     string         `json:"puzzle_hash"`
	UpdateCount    int            `json:"update_count"`
	CompliantCount int            `json:"compliant_count"`
	Total          int64          `json:"total"`
	Verdicts       []ir.Verdict   `json:"verdicts,omitempty"`
	Violations     map[int]string `json:"violations,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <input>",
		Short: "Sum middle pages of compliant updates",
		Long: `Check every update in a puzzle against its ordering rules and print
the sum of the middle pages of the compliant updates.

The input format is chosen by extension: .txt (default), .yaml/.yml or
.cue. Use "-" to read the text format from stdin.

Exit codes:
  0 - Sum computed
  1 - A compliant update has an even number of pages
  2 - Command error (input not found, parse error, etc.)

Examples:
  pageorder check puzzle.txt
  pageorder check puzzle.yaml --explain
  pageorder check puzzle.txt --workers 8 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "list every update's verdict and first broken rule")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "number of goroutines validating updates")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	workers := resolveWorkers(opts.RootOptions, opts.Workers, cmd)

	res, err := loader.Load(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d rule(s) and %d update(s) from %s", len(res.Puzzle.Rules), len(res.Puzzle.Updates), res.Source)

	report, cs, err := evaluatePuzzle(commandContext(cmd), res.Puzzle, workers)
	if err != nil {
		return outputEvaluateError(formatter, err)
	}

	result := CheckResult{
		Source:         res.Source,
		PuzzleHash:     res.Hash,
		UpdateCount:    len(res.Puzzle.Updates),
		CompliantCount: report.CompliantCount,
		Total:          report.Total,
	}
	if opts.Explain {
		result.Verdicts = report.Verdicts
		result.Violations = violations(res.Puzzle.Updates, cs)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if !opts.Explain {
		fmt.Fprintln(formatter.Writer, result.Total)
		return nil
	}
	writeVerdicts(formatter, report.Verdicts, result.Violations)
	fmt.Fprintf(formatter.Writer, "Total: %d (%d of %d updates compliant)\n",
		result.Total, result.CompliantCount, result.UpdateCount)
	return nil
}

// resolveWorkers returns the --workers flag if given, otherwise the
// PAGEORDER_WORKERS default.
func resolveWorkers(opts *RootOptions, flagValue int, cmd *cobra.Command) int {
	if !cmd.Flags().Changed("workers") && opts.Config.Workers > 0 {
		return opts.Config.Workers
	}
	return flagValue
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// evaluatePuzzle builds the constraint store and evaluates every update,
// in parallel when workers > 1.
func evaluatePuzzle(ctx context.Context, p ir.Puzzle, workers int) (*ordering.Report, *ordering.ConstraintStore, error) {
	cs := ordering.Build(p.Rules)
	slog.Debug("constraint store built", "rules", cs.RuleCount(), "pages", cs.Len())

	var (
		report *ordering.Report
		err    error
	)
	if workers > 1 {
		report, err = ordering.EvaluateParallel(ctx, p.Updates, cs, workers)
	} else {
		report, err = ordering.Evaluate(p.Updates, cs)
	}
	if err != nil {
		return nil, nil, err
	}
	return report, cs, nil
}

// violations maps each non-compliant update index to its first broken rule.
func violations(updates []ir.Update, cs *ordering.ConstraintStore) map[int]string {
	out := make(map[int]string)
	for i, u := range updates {
		if v, violated := ordering.FirstViolation(u, cs); violated {
			out[i] = v.Rule.String()
		}
	}
	return out
}

// outputEvaluateError reports a failed evaluation. An even-length compliant
// update is a puzzle problem (exit code 1); anything else is a command error.
func outputEvaluateError(formatter *OutputFormatter, err error) error {
	if errors.Is(err, ordering.ErrPrecondition) {
		_ = formatter.Error(loader.ErrCodeEvenUpdate, err.Error(), nil)
		return WrapExitError(ExitFailure, "evaluation failed", err)
	}
	_ = formatter.Error(loader.ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitCommandError, "evaluation failed", err)
}

// writeVerdicts prints one line per verdict in text format.
func writeVerdicts(formatter *OutputFormatter, verdicts []ir.Verdict, broken map[int]string) {
	for _, v := range verdicts {
		if v.Compliant {
			fmt.Fprintf(formatter.Writer, "✓ [%d] %s  middle %d\n", v.Index, formatPages(v.Pages), *v.Middle)
			continue
		}
		line := fmt.Sprintf("✗ [%d] %s", v.Index, formatPages(v.Pages))
		if rule, ok := broken[v.Index]; ok {
			line += "  breaks " + rule
		}
		fmt.Fprintln(formatter.Writer, line)
	}
}

// formatPages renders an update in its input form, e.g. "75,47,61".
func formatPages(pages ir.Update) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprint(int64(p))
	}
	return strings.Join(parts, ",")
}
