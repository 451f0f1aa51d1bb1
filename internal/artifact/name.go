package artifact

// Marker is appended to a base name, repeatedly if needed, until the result
// misses the avoid set.
const Marker = "$"

// NameSet is a membership set over identifiers. The caller seeds it with
// every name already known to the host; BuildBatch grows a working copy as
// it generates.
type NameSet map[string]bool

// NewNameSet builds a NameSet from the given names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// Clone returns an independent copy. BuildBatch mutates its working set and
// must not leak those mutations back into the caller's set.
func (s NameSet) Clone() NameSet {
	out := make(NameSet, len(s))
	for n := range s {
		out[n] = true
	}
	return out
}

// Add inserts a name.
func (s NameSet) Add(name string) {
	s[name] = true
}

// Has reports membership.
func (s NameSet) Has(name string) bool {
	return s[name]
}

// FreshName returns base if it misses avoid, otherwise base with marker
// characters appended until unique. Deterministic given identical inputs;
// the loop is bounded by len(avoid)+1 since each marker strictly grows the
// candidate.
func FreshName(base string, avoid NameSet) string {
	name := base
	for avoid.Has(name) {
		name += Marker
	}
	return name
}
