package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalPrimitives(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", `"hello"`},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"formula", Implies(Sym("p"), Sym("q")), `"(implies p q)"`},
		{"no html escaping", "a<b>&c", `"a<b>&c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalCanonical(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestMarshalCanonicalRejectsFloatsAndNull(t *testing.T) {
	_, err := MarshalCanonical(3.14)
	require.Error(t, err)

	_, err = MarshalCanonical(nil)
	require.Error(t, err)

	_, err = MarshalCanonical(map[string]any{"x": 1.5})
	require.Error(t, err)
}

func TestMarshalCanonicalObjectKeyOrder(t *testing.T) {
	obj := map[string]any{
		"b": int64(2),
		"a": int64(1),
		"c": int64(3),
	}
	got, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(got))
}

func TestMarshalCanonicalHintsMap(t *testing.T) {
	got, err := MarshalCanonical(map[string]string{"max-vars": "8", "induct": "t"})
	require.NoError(t, err)
	assert.Equal(t, `{"induct":"t","max-vars":"8"}`, string(got))
}

func TestMarshalCanonicalNFCNormalization(t *testing.T) {
	// "e" + COMBINING ACUTE ACCENT normalizes to precomposed U+00E9
	decomposed := "e\u0301"
	precomposed := "\u00e9"

	a, err := MarshalCanonical(decomposed)
	require.NoError(t, err)
	b, err := MarshalCanonical(precomposed)
	require.NoError(t, err)
	assert.Equal(t, string(b), string(a))
}

func TestMarshalCanonicalDeterministic(t *testing.T) {
	obj := map[string]any{
		"classes": []RuleClass{"rewrite", "linear"},
		"name":    "inv-holds",
		"enabled": true,
	}

	first, err := MarshalCanonical(obj)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := MarshalCanonical(obj)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
