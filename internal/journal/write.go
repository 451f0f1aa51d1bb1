package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// BeginRun inserts the run row. Idempotent: re-inserting an existing token
// is silently ignored, so crash-and-retry with the same token is safe.
func (j *Journal) BeginRun(ctx context.Context, run Run) error {
	startedAt := run.StartedAt
	if startedAt == "" {
		startedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs
		(token, ledger, engine_version, ir_version, started_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		run.Token,
		run.Ledger,
		run.EngineVersion,
		run.IRVersion,
		startedAt,
	)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// RecordAttempt inserts one attempt row.
// Uses ON CONFLICT(run_token, seq) DO NOTHING for idempotency; replaying a
// run's records after a crash is a no-op for rows already present.
func (j *Journal) RecordAttempt(ctx context.Context, att Attempt) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO attempts
		(run_token, seq, obligation, obligation_id, statement, ok, diagnostic)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_token, seq) DO NOTHING
	`,
		att.RunToken,
		att.Seq,
		att.Obligation,
		att.ObligationID,
		att.Statement,
		att.OK,
		att.Diagnostic,
	)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// RecordArtifact inserts one artifact descriptor row.
// The class list is serialized to canonical JSON so byte comparison of rows
// is meaningful.
func (j *Journal) RecordArtifact(ctx context.Context, rec ArtifactRecord) error {
	classesJSON, err := marshalClasses(rec.Classes)
	if err != nil {
		return fmt.Errorf("record artifact: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO artifacts
		(run_token, seq, artifact_id, name, source, statement, local, enabled, classes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_token, seq) DO NOTHING
	`,
		rec.RunToken,
		rec.Seq,
		rec.ArtifactID,
		rec.Name,
		rec.Source,
		rec.Statement,
		rec.Local,
		rec.Enabled,
		classesJSON,
	)
	if err != nil {
		return fmt.Errorf("record artifact: %w", err)
	}
	return nil
}

func marshalClasses(classes []ir.RuleClass) (string, error) {
	if classes == nil {
		classes = []ir.RuleClass{}
	}
	data, err := ir.MarshalCanonical(classes)
	if err != nil {
		return "", fmt.Errorf("marshal classes: %w", err)
	}
	return string(data), nil
}
