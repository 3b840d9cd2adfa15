package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pageorder/internal/loader"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool                     `json:"valid"`
	RuleCount   int                      `json:"rule_count"`
	UpdateCount int                      `json:"update_count"`
	Errors      []loader.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <input>",
		Short: "Validate a puzzle without evaluating it",
		Long: `Parse a puzzle and report every shape problem at once: negative pages,
empty updates, updates without a middle page and a missing rule section.

Even-length updates are reported because they have no middle page; check
only fails on them when they turn out to be compliant.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	res, err := loader.Load(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	formatter.VerboseLog("Parsed %s as %s", res.Source, res.Format)

	result := ValidationResult{
		Valid:       true,
		RuleCount:   len(res.Puzzle.Rules),
		UpdateCount: len(res.Puzzle.Updates),
		Errors:      loader.Validate(res.Puzzle),
	}
	if len(result.Errors) > 0 {
		result.Valid = false
		return outputValidationErrors(formatter, result)
	}

	return outputValidateSuccess(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Puzzle valid: %d rule(s), %d update(s)\n", result.RuleCount, result.UpdateCount)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "%s\n", err.Field)
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}

// ValidateFile loads and validates a puzzle file.
// This is a helper function for external callers.
func ValidateFile(path string) ([]loader.ValidationError, error) {
	res, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	return loader.Validate(res.Puzzle), nil
}
