// Package journal provides the durable audit trail for prover runs.
//
// Each CLI invocation opens one run, identified by a UUIDv7 token. Every
// proof attempt and every emitted artifact descriptor is appended under that
// run, stamped with a monotonic logical sequence number so the recorded
// order is exactly the attempt order regardless of wall clock.
//
// The journal is strictly an observer: it never influences proof outcomes,
// and the ledger itself remains transient. SQLite with WAL mode backs the
// trail; writes are idempotent per (run, seq).
package journal
