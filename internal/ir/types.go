package ir

// Obligation is a named logical condition that must be discharged before a
// dependent action is permitted.
type Obligation struct {
	Name      string    `json:"name"`
	Statement Formula   `json:"-"`
	Strategy  *Strategy `json:"strategy,omitempty"` // Optional proof-search guidance
}

// Strategy carries opaque hints for the proof oracle. The ledger never
// interprets hints; each oracle documents the keys it honors.
type Strategy struct {
	Hints map[string]string `json:"hints,omitempty"`
}

// Hint returns the hint for key, or "" if absent. Safe on a nil Strategy.
func (s *Strategy) Hint(key string) string {
	if s == nil {
		return ""
	}
	return s.Hints[key]
}

// Ledger is an ordered sequence of obligations processed together for one
// request. Order is significant: later obligations may depend on earlier
// ones being available. Ledgers are transient and never persisted.
type Ledger []Obligation

// Outcome is the result of attempting one obligation, or of a whole ledger.
//
// Diagnostic is present-but-possibly-empty rather than optional: it is ""
// on success today, but the field is an extension point for success-case
// reporting and must not be collapsed into a bare bool.
type Outcome struct {
	OK         bool   `json:"ok"`
	Diagnostic string `json:"diagnostic"`
}

// Success is the aggregate all-obligations-discharged outcome.
func Success() Outcome {
	return Outcome{OK: true, Diagnostic: ""}
}

// Failure constructs a failed outcome carrying diagnostic verbatim.
func Failure(diagnostic string) Outcome {
	return Outcome{OK: false, Diagnostic: diagnostic}
}

// RuleClass classifies a generated artifact as a kind of proof rule.
type RuleClass string

// ValidRuleClasses defines the allowed artifact classifications.
var ValidRuleClasses = map[RuleClass]bool{
	"rewrite":           true,
	"linear":            true,
	"type-prescription": true,
	"forward-chaining":  true,
}

// Artifact is an immutable statement-with-proof descriptor produced from a
// successfully discharged obligation. The ledger only constructs the
// descriptor; registering it with the host is the caller's responsibility.
type Artifact struct {
	// Name is the generated, collision-free artifact name.
	Name string `json:"name"`

	// Source is the obligation name the artifact was generated from.
	Source string `json:"source"`

	Statement Formula `json:"-"`

	// Local scopes the artifact's effect to the enclosing block.
	Local bool `json:"local"`

	// Enabled selects whether the artifact is active as a proof rule on
	// creation. An artifact with no classes MUST be enabled - disabled and
	// unclassified would be unreachable and serve no purpose.
	Enabled bool `json:"enabled"`

	Classes []RuleClass `json:"classes,omitempty"`
}
