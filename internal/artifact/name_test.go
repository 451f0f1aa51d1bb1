package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreshNameNoCollision(t *testing.T) {
	avoid := NewNameSet("other")
	assert.Equal(t, "inv", FreshName("inv", avoid))
}

func TestFreshNameSingleMarker(t *testing.T) {
	avoid := NewNameSet("x")
	got := FreshName("x", avoid)
	assert.Equal(t, "x$", got)
	assert.NotEqual(t, "x", got)
}

func TestFreshNameRepeatedMarkers(t *testing.T) {
	avoid := NewNameSet("x", "x$", "x$$")
	assert.Equal(t, "x$$$", FreshName("x", avoid))
}

func TestFreshNameDeterministicAndCollisionFree(t *testing.T) {
	avoid := NewNameSet("a", "a$", "b", "c$$")
	for _, base := range []string{"a", "b", "c", "d"} {
		first := FreshName(base, avoid)
		assert.False(t, avoid.Has(first))
		assert.Equal(t, first, FreshName(base, avoid))
	}
}

func TestNameSetCloneIsIndependent(t *testing.T) {
	orig := NewNameSet("a")
	clone := orig.Clone()
	clone.Add("b")

	assert.True(t, clone.Has("b"))
	assert.False(t, orig.Has("b"))
}
