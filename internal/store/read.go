package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/pageorder/internal/ir"
)

const runColumns = `id, seq, puzzle_hash, source, rule_count, update_count, compliant_count, total`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (ir.Run, error) {
	var run ir.Run
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.PuzzleHash,
		&run.Source,
		&run.RuleCount,
		&run.UpdateCount,
		&run.CompliantCount,
		&run.Total,
	)
	if err != nil {
		return ir.Run{}, err
	}
	return run, nil
}

// ReadRun retrieves a run and its verdicts by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ir.Run{}, err
		}
		return ir.Run{}, fmt.Errorf("read run: %w", err)
	}

	run.Verdicts, err = s.readVerdicts(ctx, id)
	if err != nil {
		return ir.Run{}, err
	}
	return run, nil
}

// readVerdicts returns a run's verdicts ordered by update index.
func (s *Store) readVerdicts(ctx context.Context, runID string) ([]ir.Verdict, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, pages, compliant, middle
		FROM verdicts
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query verdicts: %w", err)
	}
	defer rows.Close()

	verdicts := []ir.Verdict{}
	for rows.Next() {
		var (
			v         ir.Verdict
			pagesJSON string
			middle    sql.NullInt64
		)
		if err := rows.Scan(&v.Index, &pagesJSON, &v.Compliant, &middle); err != nil {
			return nil, fmt.Errorf("scan verdict: %w", err)
		}
		v.Pages, err = unmarshalPages(pagesJSON)
		if err != nil {
			return nil, err
		}
		if middle.Valid {
			mid := ir.Page(middle.Int64)
			v.Middle = &mid
		}
		verdicts = append(verdicts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}
	return verdicts, nil
}

// ListRuns returns every run, without verdicts, ordered by seq ASC.
// Returns an empty slice (not nil) if no runs are stored.
func (s *Store) ListRuns(ctx context.Context) ([]ir.Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []ir.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LatestRunForPuzzle returns the most recent run of the puzzle with the
// given hash, verdicts included. found is false when the puzzle has never
// been recorded.
func (s *Store) LatestRunForPuzzle(ctx context.Context, puzzleHash string) (run ir.Run, found bool, err error) {
	var id string
	err = s.db.QueryRowContext(ctx, `
		SELECT id FROM runs
		WHERE puzzle_hash = ?
		ORDER BY seq DESC
		LIMIT 1
	`, puzzleHash).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Run{}, false, nil
	}
	if err != nil {
		return ir.Run{}, false, fmt.Errorf("latest run: %w", err)
	}

	run, err = s.ReadRun(ctx, id)
	if err != nil {
		return ir.Run{}, false, err
	}
	return run, true, nil
}
