package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/pageorder/internal/ir"
	"github.com/roach88/pageorder/internal/loader"
	"github.com/roach88/pageorder/internal/ordering"
	"github.com/roach88/pageorder/internal/store"
	"github.com/roach88/pageorder/internal/testutil"
)

// inlineSource labels runs whose puzzle is defined in the scenario itself.
const inlineSource = "<inline>"

// Harness is the test execution engine.
// It evaluates scenarios against a fresh store with deterministic run IDs.
type Harness struct {
	store  *store.Store
	ids    store.IDGenerator
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Verdicts in the result are read back from that database, so a scenario
// also checks that runs persist without loss.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Load the puzzle from Input or the inline rules and updates
// 3. Evaluate every update
// 4. Record the run and read it back
// 5. Evaluate assertions
//
// An aborted evaluation (even-length compliant update) is recorded in
// Result.EvalError rather than returned, so scenarios can assert on it.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		ids:    testutil.NewSequentialIDGenerator("scenario"),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	ctx := context.Background()

	puzzle, source, err := resolvePuzzle(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzle: %w", err)
	}

	result := NewResult()
	if err := h.evaluate(ctx, scenario, puzzle, source, result); err != nil {
		return nil, err
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// evaluate runs the ordering checks, persists the run and fills result.
func (h *Harness) evaluate(ctx context.Context, scenario *Scenario, puzzle ir.Puzzle, source string, result *Result) error {
	cs := ordering.Build(puzzle.Rules)

	var (
		report *ordering.Report
		err    error
	)
	if scenario.Workers > 1 {
		report, err = ordering.EvaluateParallel(ctx, puzzle.Updates, cs, scenario.Workers)
	} else {
		report, err = ordering.Evaluate(puzzle.Updates, cs)
	}
	if err != nil {
		var precondErr *ordering.PreconditionError
		if !errors.As(err, &precondErr) {
			return fmt.Errorf("failed to evaluate: %w", err)
		}
		result.EvalError = err.Error()
		result.PreconditionIndex = precondErr.Index
		h.logger.Info("evaluation aborted",
			"scenario", scenario.Name,
			"index", precondErr.Index,
			"length", precondErr.Length,
		)
		return nil
	}

	for i, u := range puzzle.Updates {
		if v, violated := ordering.FirstViolation(u, cs); violated {
			result.Violations[i] = v.Rule.String()
		}
	}

	hash, err := ir.PuzzleHash(puzzle)
	if err != nil {
		return fmt.Errorf("failed to hash puzzle: %w", err)
	}

	run := ir.Run{
		ID:             h.ids.Generate(),
		PuzzleHash:     hash,
		Source:         source,
		RuleCount:      len(puzzle.Rules),
		UpdateCount:    len(puzzle.Updates),
		CompliantCount: report.CompliantCount,
		Total:          report.Total,
		Verdicts:       report.Verdicts,
	}
	if _, err := h.store.WriteRun(ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	stored, err := h.store.ReadRun(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to read back run: %w", err)
	}

	result.RunID = stored.ID
	result.Total = stored.Total
	result.CompliantCount = stored.CompliantCount
	result.Verdicts = stored.Verdicts

	h.logger.Info("scenario evaluated",
		"scenario", scenario.Name,
		"run_id", stored.ID,
		"seq", stored.Seq,
		"total", stored.Total,
	)
	return nil
}

// resolvePuzzle returns the scenario's puzzle and a source label.
func resolvePuzzle(s *Scenario) (ir.Puzzle, string, error) {
	if s.Input != "" {
		res, err := loader.Load(s.Input)
		if err != nil {
			return ir.Puzzle{}, "", err
		}
		return res.Puzzle, res.Source, nil
	}

	puzzle, err := convertInlinePuzzle(s.Rules, s.Updates)
	if err != nil {
		return ir.Puzzle{}, "", err
	}
	return puzzle, inlineSource, nil
}

// convertInlinePuzzle converts YAML-parsed rule pairs and updates to IR.
func convertInlinePuzzle(rules, updates [][]int64) (ir.Puzzle, error) {
	p := ir.Puzzle{
		Rules:   make([]ir.Rule, len(rules)),
		Updates: make([]ir.Update, len(updates)),
	}

	for i, pair := range rules {
		if len(pair) != 2 {
			return ir.Puzzle{}, fmt.Errorf("rules[%d]: want [before, after], got %d values", i, len(pair))
		}
		before, err := convertPage(pair[0])
		if err != nil {
			return ir.Puzzle{}, fmt.Errorf("rules[%d]: %w", i, err)
		}
		after, err := convertPage(pair[1])
		if err != nil {
			return ir.Puzzle{}, fmt.Errorf("rules[%d]: %w", i, err)
		}
		p.Rules[i] = ir.Rule{Before: before, After: after}
	}

	for i, pages := range updates {
		u := make(ir.Update, len(pages))
		for j, raw := range pages {
			page, err := convertPage(raw)
			if err != nil {
				return ir.Puzzle{}, fmt.Errorf("updates[%d][%d]: %w", i, j, err)
			}
			u[j] = page
		}
		p.Updates[i] = u
	}

	return p, nil
}

func convertPage(v int64) (ir.Page, error) {
	if v < 0 {
		return 0, fmt.Errorf("negative page %d", v)
	}
	return ir.Page(v), nil
}
