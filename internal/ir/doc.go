// Package ir defines the data model for the obligation ledger: obligations,
// proof outcomes, artifact descriptors, and the propositional formula AST
// they carry.
//
// The package also provides the canonical serialization used for
// content-addressed identity (RFC 8785 canonical JSON with domain-separated
// SHA-256 hashing). All identity computation MUST go through MarshalCanonical;
// standard json.Marshal produces different bytes and different hashes.
package ir
