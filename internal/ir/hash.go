package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainObligation = "oblige/obligation/v1"
	DomainArtifact   = "oblige/artifact/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ObligationID computes the content-addressed ID for an obligation.
// Stable across runs given the same name, statement, and strategy hints.
// The journal uses this to correlate attempts on the same obligation across
// runs without storing full statements redundantly.
func ObligationID(ob Obligation) (string, error) {
	obj := map[string]any{
		"name":      ob.Name,
		"statement": ob.Statement.String(),
	}
	if ob.Strategy != nil && len(ob.Strategy.Hints) > 0 {
		obj["hints"] = ob.Strategy.Hints
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ObligationID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainObligation, canonical), nil
}

// ArtifactID computes the content-addressed ID for an artifact descriptor.
func ArtifactID(a Artifact) (string, error) {
	obj := map[string]any{
		"name":      a.Name,
		"source":    a.Source,
		"statement": a.Statement.String(),
		"local":     a.Local,
		"enabled":   a.Enabled,
		"classes":   a.Classes,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ArtifactID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainArtifact, canonical), nil
}
