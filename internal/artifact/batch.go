package artifact

import (
	"fmt"

	"github.com/ahmedwaqar/oblige/internal/ir"
)

// NamePair maps one obligation's original name to its generated artifact
// name. Pairs are ordered; original names may legitimately repeat, so the
// mapping is a sequence, not a map.
type NamePair struct {
	Original  string `json:"original"`
	Generated string `json:"generated"`
}

// NameMap is the ordered original-to-generated name mapping for one batch.
// Insertion order equals input order.
type NameMap []NamePair

// Lookup returns the generated name for the first pair matching original.
func (m NameMap) Lookup(original string) (string, bool) {
	for _, p := range m {
		if p.Original == original {
			return p.Generated, true
		}
	}
	return "", false
}

// BuildBatch produces artifact descriptors for a whole ledger with parallel
// per-obligation policy sequences.
//
// INVARIANT: each generated name joins the working avoid set BEFORE the next
// obligation is processed, so later artifacts never collide with earlier
// ones in the same batch even though none of them exist in the host world
// yet. This threading is what distinguishes batch generation from
// independent Build calls.
//
// All four inputs must have equal length; a mismatch is a contract error
// and produces no partial output. The caller's avoid set is never mutated.
func BuildBatch(ledger ir.Ledger, policies []Policy, avoid NameSet) (NameMap, []ir.Artifact, error) {
	if len(policies) != len(ledger) {
		return nil, nil, &ContractError{
			Code: ErrCodeLengthMismatch,
			Message: fmt.Sprintf("ledger has %d obligations but %d policies supplied",
				len(ledger), len(policies)),
		}
	}

	working := avoid.Clone()
	names := make(NameMap, 0, len(ledger))
	arts := make([]ir.Artifact, 0, len(ledger))

	for i, ob := range ledger {
		name, art, err := Build(ob, policies[i], working)
		if err != nil {
			return nil, nil, err
		}
		working.Add(name)
		names = append(names, NamePair{Original: ob.Name, Generated: name})
		arts = append(arts, art)
	}

	return names, arts, nil
}

// BuildBatchSeqs is BuildBatch with the policy flags as three parallel
// sequences, for callers that assemble flags column-wise (the compiler
// emits this shape). Length mismatch in any sequence is a contract error.
func BuildBatchSeqs(ledger ir.Ledger, locals, enableds []bool, classes [][]ir.RuleClass, avoid NameSet) (NameMap, []ir.Artifact, error) {
	if len(locals) != len(ledger) || len(enableds) != len(ledger) || len(classes) != len(ledger) {
		return nil, nil, &ContractError{
			Code: ErrCodeLengthMismatch,
			Message: fmt.Sprintf(
				"obligations=%d locals=%d enableds=%d classes=%d must all match",
				len(ledger), len(locals), len(enableds), len(classes)),
		}
	}

	policies := make([]Policy, len(ledger))
	for i := range ledger {
		policies[i] = Policy{Local: locals[i], Enabled: enableds[i], Classes: classes[i]}
	}
	return BuildBatch(ledger, policies, avoid)
}
