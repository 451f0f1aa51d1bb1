package journal

import "github.com/ahmedwaqar/oblige/internal/ir"

// Run is one journal run: a single CLI invocation over one ledger.
type Run struct {
	// Token is the UUIDv7 run token.
	Token string `json:"token"`

	// Ledger is the ledger name the run proved.
	Ledger string `json:"ledger"`

	// EngineVersion and IRVersion pin the software that produced the run.
	EngineVersion string `json:"engine_version"`
	IRVersion     string `json:"ir_version"`

	// StartedAt is an RFC 3339 UTC timestamp. Informational only; ordering
	// within a run comes from seq, and across runs from the token.
	StartedAt string `json:"started_at"`
}

// Attempt is one recorded proof attempt.
type Attempt struct {
	RunToken string `json:"run_token"`
	Seq      int64  `json:"seq"`

	// Obligation is the obligation name; ObligationID is its content hash.
	Obligation   string `json:"obligation"`
	ObligationID string `json:"obligation_id"`

	// Statement is the statement's printed form.
	Statement string `json:"statement"`

	OK         bool   `json:"ok"`
	Diagnostic string `json:"diagnostic"`
}

// ArtifactRecord is one recorded artifact descriptor.
type ArtifactRecord struct {
	RunToken string `json:"run_token"`
	Seq      int64  `json:"seq"`

	// ArtifactID is the descriptor's content hash.
	ArtifactID string `json:"artifact_id"`

	Name      string `json:"name"`
	Source    string `json:"source"`
	Statement string `json:"statement"`
	Local     bool   `json:"local"`
	Enabled   bool   `json:"enabled"`

	Classes []ir.RuleClass `json:"classes"`
}
