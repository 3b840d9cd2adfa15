package ordering

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/pageorder/internal/ir"
)

// Report is the evaluation of a batch of updates.
type Report struct {
	Verdicts       []ir.Verdict `json:"verdicts"`
	CompliantCount int          `json:"compliant_count"`
	Total          int64        `json:"total"`
}

// MiddlePage returns the page at index len(update)/2.
// Even-length and empty updates have no middle and yield a *PreconditionError.
func MiddlePage(update ir.Update) (ir.Page, error) {
	return middlePage(update, -1)
}

func middlePage(update ir.Update, index int) (ir.Page, error) {
	if len(update)%2 == 0 {
		return 0, &PreconditionError{Index: index, Length: len(update)}
	}
	return update[len(update)/2], nil
}

// SumMiddleOfCompliant sums the middle page of every compliant update.
//
// Only compliant updates have their middle extracted, so only they must be
// of odd length. A violation aborts the whole sum: no partial total is
// returned.
func SumMiddleOfCompliant(updates []ir.Update, cs *ConstraintStore) (int64, error) {
	var total int64
	for i, u := range updates {
		if !IsCompliant(u, cs) {
			continue
		}
		mid, err := middlePage(u, i)
		if err != nil {
			return 0, err
		}
		total += int64(mid)
	}
	return total, nil
}

// Evaluate produces a verdict for every update and the middle-page total
// of the compliant ones. Its Total always equals SumMiddleOfCompliant.
func Evaluate(updates []ir.Update, cs *ConstraintStore) (*Report, error) {
	verdicts := make([]ir.Verdict, len(updates))
	for i, u := range updates {
		v, err := evaluateOne(i, u, cs)
		if err != nil {
			return nil, err
		}
		verdicts[i] = v
	}
	return summarize(verdicts), nil
}

// EvaluateParallel is Evaluate with validation spread across at most
// workers goroutines. Each goroutine writes only its own verdict slot and
// reads cs without locking. A workers value below 1 is treated as 1.
//
// The first precondition error, or ctx cancellation, stops the batch.
func EvaluateParallel(ctx context.Context, updates []ir.Update, cs *ConstraintStore, workers int) (*Report, error) {
	if workers < 1 {
		workers = 1
	}

	verdicts := make([]ir.Verdict, len(updates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, u := range updates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := evaluateOne(i, u, cs)
			if err != nil {
				return err
			}
			verdicts[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Debug("updates evaluated",
		"updates", len(updates),
		"workers", workers,
	)
	return summarize(verdicts), nil
}

func evaluateOne(index int, update ir.Update, cs *ConstraintStore) (ir.Verdict, error) {
	v := ir.Verdict{
		Index: index,
		Pages: update,
	}

	violation, violated := FirstViolation(update, cs)
	if violated {
		slog.Debug("update not compliant",
			"index", index,
			"violation", violation.String(),
		)
		return v, nil
	}

	mid, err := middlePage(update, index)
	if err != nil {
		return ir.Verdict{}, fmt.Errorf("evaluate: %w", err)
	}
	v.Compliant = true
	v.Middle = &mid
	return v, nil
}

func summarize(verdicts []ir.Verdict) *Report {
	r := &Report{Verdicts: verdicts}
	for _, v := range verdicts {
		if v.Compliant {
			r.CompliantCount++
			r.Total += int64(*v.Middle)
		}
	}
	return r
}
