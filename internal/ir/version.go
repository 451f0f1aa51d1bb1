package ir

// IRVersion identifies the IR schema version recorded with journal entries.
// Bump when the canonical encoding of obligations or artifacts changes.
const IRVersion = "1"

// EngineVersion identifies the prover build recorded with journal runs.
const EngineVersion = "0.1.0"
