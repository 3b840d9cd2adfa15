package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/pageorder/internal/ir"
)

// ErrDuplicateRun is returned when a run ID is already stored.
var ErrDuplicateRun = errors.New("run already exists")

// WriteRun atomically inserts a run and its verdicts.
//
// The run's Seq is assigned here as MAX(seq)+1 inside the transaction and
// returned; any Seq set by the caller is ignored. Writing the same run ID
// twice returns ErrDuplicateRun and leaves the store unchanged.
func (s *Store) WriteRun(ctx context.Context, run ir.Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, run.ID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("write run: check existing: %w", err)
	}
	if exists > 0 {
		return 0, fmt.Errorf("write run %s: %w", run.ID, ErrDuplicateRun)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, puzzle_hash, source, rule_count, update_count, compliant_count, total, schema_version, tool_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		seq,
		run.PuzzleHash,
		run.Source,
		run.RuleCount,
		run.UpdateCount,
		run.CompliantCount,
		run.Total,
		ir.SchemaVersion,
		ir.ToolVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: insert: %w", err)
	}

	for _, v := range run.Verdicts {
		if err := writeVerdict(ctx, tx, run.ID, v); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}

// writeVerdict inserts one verdict row. Middle is NULL for non-compliant
// updates.
func writeVerdict(ctx context.Context, tx *sql.Tx, runID string, v ir.Verdict) error {
	pagesJSON, err := marshalPages(v.Pages)
	if err != nil {
		return fmt.Errorf("write verdict %d: %w", v.Index, err)
	}

	var middle sql.NullInt64
	if v.Middle != nil {
		middle = sql.NullInt64{Int64: int64(*v.Middle), Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO verdicts
		(run_id, idx, pages, compliant, middle)
		VALUES (?, ?, ?, ?, ?)
	`,
		runID,
		v.Index,
		pagesJSON,
		v.Compliant,
		middle,
	)
	if err != nil {
		return fmt.Errorf("write verdict %d: %w", v.Index, err)
	}
	return nil
}
