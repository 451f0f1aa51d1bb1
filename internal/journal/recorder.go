package journal

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// Recorder appends the records of one run. It satisfies the prover's
// Observer contract: recording never influences proof outcomes, so write
// errors are retained rather than propagated into the attempt path. Callers
// check Err after the run.
type Recorder struct {
	j     *Journal
	clock *Clock
	token string

	mu  sync.Mutex
	err error // first write error, sticky
}

// StartRun inserts the run row and returns a Recorder bound to it.
func (j *Journal) StartRun(ctx context.Context, gen TokenGenerator, ledgerName string) (*Recorder, error) {
	run := Run{
		Token:         gen.Generate(),
		Ledger:        ledgerName,
		EngineVersion: ir.EngineVersion,
		IRVersion:     ir.IRVersion,
	}
	if err := j.BeginRun(ctx, run); err != nil {
		return nil, err
	}

	return &Recorder{
		j:     j,
		clock: NewClock(),
		token: run.Token,
	}, nil
}

// Token returns the run token the recorder writes under.
func (r *Recorder) Token() string {
	return r.token
}

// Err returns the first write error encountered, or nil.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.err = err
	}
	slog.Warn("journal write failed", "run", r.token, "error", err)
}

// Observe records one proof attempt outcome.
func (r *Recorder) Observe(ob ir.Obligation, outcome ir.Outcome) {
	id, err := ir.ObligationID(ob)
	if err != nil {
		r.fail(err)
		return
	}

	att := Attempt{
		RunToken:     r.token,
		Seq:          r.clock.Next(),
		Obligation:   ob.Name,
		ObligationID: id,
		Statement:    ob.Statement.String(),
		OK:           outcome.OK,
		Diagnostic:   outcome.Diagnostic,
	}
	if err := r.j.RecordAttempt(context.Background(), att); err != nil {
		r.fail(err)
	}
}

// RecordBuilt records one emitted artifact descriptor.
func (r *Recorder) RecordBuilt(a ir.Artifact) {
	id, err := ir.ArtifactID(a)
	if err != nil {
		r.fail(err)
		return
	}

	rec := ArtifactRecord{
		RunToken:   r.token,
		Seq:        r.clock.Next(),
		ArtifactID: id,
		Name:       a.Name,
		Source:     a.Source,
		Statement:  a.Statement.String(),
		Local:      a.Local,
		Enabled:    a.Enabled,
		Classes:    a.Classes,
	}
	if err := r.j.RecordArtifact(context.Background(), rec); err != nil {
		r.fail(err)
	}
}
