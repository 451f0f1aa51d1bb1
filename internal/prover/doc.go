// Package prover discharges obligation ledgers against a proof oracle.
//
// Three layers, with a strict propagation contract between them:
//
//   - ProveObligation attempts one obligation and returns the outcome as
//     data. No error crosses this boundary: an oracle fault becomes a failed
//     outcome with a distinguishing diagnostic prefix.
//   - ProveLedger folds ProveObligation over a ledger strictly in order,
//     short-circuiting at the first failure. Only the first failure's
//     diagnostic is reported; later obligations are never attempted.
//   - Enforce is the ONLY layer that converts a failed outcome into a Go
//     error. The diagnostic is surfaced verbatim - wrapping it would lose
//     the formula text users need for diagnosis.
//
// Evaluation is strictly sequential. The oracle fronts a single shared
// proof engine whose state cannot tolerate interleaved attempts, and a
// failure aborts the remaining attempts anyway.
package prover
