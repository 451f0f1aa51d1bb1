package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// ListRuns returns all runs ordered by token. UUIDv7 tokens sort by creation
// time, so this is chronological order.
//
// Returns an empty slice (not nil) if the journal has no runs.
func (j *Journal) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT token, ledger, engine_version, ir_version, started_at
		FROM runs
		ORDER BY token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.Token, &r.Ledger, &r.EngineVersion, &r.IRVersion, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	if runs == nil {
		runs = []Run{}
	}

	return runs, nil
}

// ReadRun retrieves a single run by token.
// Returns sql.ErrNoRows if not found.
func (j *Journal) ReadRun(ctx context.Context, token string) (Run, error) {
	var r Run
	err := j.db.QueryRowContext(ctx, `
		SELECT token, ledger, engine_version, ir_version, started_at
		FROM runs
		WHERE token = ?
	`, token).Scan(&r.Token, &r.Ledger, &r.EngineVersion, &r.IRVersion, &r.StartedAt)
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

// ReadAttempts returns all attempts for a run in attempt order (seq ASC).
//
// Returns an empty slice (not nil) if no attempts exist for the token.
func (j *Journal) ReadAttempts(ctx context.Context, token string) ([]Attempt, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_token, seq, obligation, obligation_id, statement, ok, diagnostic
		FROM attempts
		WHERE run_token = ?
		ORDER BY seq ASC
	`, token)
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

// ReadArtifacts returns all artifact records for a run in emission order.
//
// Returns an empty slice (not nil) if no artifacts exist for the token.
func (j *Journal) ReadArtifacts(ctx context.Context, token string) ([]ArtifactRecord, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_token, seq, artifact_id, name, source, statement, local, enabled, classes
		FROM artifacts
		WHERE run_token = ?
		ORDER BY seq ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	var records []ArtifactRecord
	for rows.Next() {
		var rec ArtifactRecord
		var classesJSON string
		if err := rows.Scan(
			&rec.RunToken, &rec.Seq, &rec.ArtifactID, &rec.Name, &rec.Source,
			&rec.Statement, &rec.Local, &rec.Enabled, &classesJSON,
		); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}

		classes, err := unmarshalClasses(classesJSON)
		if err != nil {
			return nil, err
		}
		rec.Classes = classes

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}

	if records == nil {
		records = []ArtifactRecord{}
	}

	return records, nil
}

func scanAttempts(rows *sql.Rows) ([]Attempt, error) {
	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(
			&a.RunToken, &a.Seq, &a.Obligation, &a.ObligationID,
			&a.Statement, &a.OK, &a.Diagnostic,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}

	if attempts == nil {
		attempts = []Attempt{}
	}

	return attempts, nil
}

func unmarshalClasses(data string) ([]ir.RuleClass, error) {
	var names []string
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, fmt.Errorf("unmarshal classes: %w", err)
	}
	classes := make([]ir.RuleClass, len(names))
	for i, n := range names {
		classes[i] = ir.RuleClass(n)
	}
	return classes, nil
}
