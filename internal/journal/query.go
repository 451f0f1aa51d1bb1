package journal

import (
	"context"
	"fmt"
	"strings"
)

// AttemptFilter selects attempts across runs. Zero-value fields are
// unconstrained; set fields are ANDed together.
type AttemptFilter struct {
	// RunToken restricts results to one run.
	RunToken string

	// Obligation matches the obligation name exactly.
	Obligation string

	// ObligationID matches the content-addressed obligation ID, correlating
	// attempts on the same obligation across runs.
	ObligationID string

	// FailedOnly keeps only failed attempts.
	FailedOnly bool
}

// compile converts the filter to a parameterized WHERE clause.
// Values are never interpolated into the SQL text.
//
// Every compiled query carries a total ORDER BY (run_token, seq) so results
// are deterministic across SQLite versions.
func (f AttemptFilter) compile() (string, []any) {
	var conds []string
	var params []any

	if f.RunToken != "" {
		conds = append(conds, "run_token = ?")
		params = append(params, f.RunToken)
	}
	if f.Obligation != "" {
		conds = append(conds, "obligation = ?")
		params = append(params, f.Obligation)
	}
	if f.ObligationID != "" {
		conds = append(conds, "obligation_id = ?")
		params = append(params, f.ObligationID)
	}
	if f.FailedOnly {
		conds = append(conds, "ok = 0")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	sql := `
		SELECT run_token, seq, obligation, obligation_id, statement, ok, diagnostic
		FROM attempts` + where + `
		ORDER BY run_token COLLATE BINARY ASC, seq ASC
	`
	return sql, params
}

// QueryAttempts returns all attempts matching the filter, ordered by
// (run token, seq).
//
// Returns an empty slice (not nil) when nothing matches.
func (j *Journal) QueryAttempts(ctx context.Context, f AttemptFilter) ([]Attempt, error) {
	sql, params := f.compile()

	rows, err := j.db.QueryContext(ctx, sql, params...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	attempts, err := scanAttempts(rows)
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
