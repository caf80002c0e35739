package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apicompat/internal/symbol"
)

func TestRankSignatures(t *testing.T) {
	ns := symbol.NewNamespace("N")
	typ := ns.AddType("C", symbol.Public)
	target := typ.AddMethod("Foo", symbol.Public, "System.Int32", "System.String")
	far := typ.AddMethod("Foo", symbol.Public, "System.Boolean", "System.Object")
	near := typ.AddMethod("Foo", symbol.Public, "System.Int64", "System.String")
	symbol.NewLibrary("side", ns)

	ranked := RankSignatures(target, []*symbol.Symbol{far, near})
	require.Len(t, ranked, 2)

	best := ranked.Best()
	require.NotNil(t, best)
	assert.Same(t, near, best.Symbol)
	assert.Equal(t, 1, best.Distance)
	assert.Equal(t, "M:N.C.Foo(System.Int64,System.String)", best.Key)
	assert.Equal(t, 2, ranked[1].Distance)
	assert.False(t, ranked.IsAmbiguous())
}

func TestRankSignatures_TieBreaksByKey(t *testing.T) {
	ns := symbol.NewNamespace("N")
	typ := ns.AddType("C", symbol.Public)
	target := typ.AddMethod("Foo", symbol.Public, "A")
	b := typ.AddMethod("Foo", symbol.Public, "Y")
	a := typ.AddMethod("Foo", symbol.Public, "X")
	symbol.NewLibrary("side", ns)

	ranked := RankSignatures(target, []*symbol.Symbol{b, a})

	assert.True(t, ranked.IsAmbiguous())
	assert.Same(t, a, ranked.Best().Symbol, "equal rank falls back to key order")

	again := RankSignatures(target, []*symbol.Symbol{a, b})
	assert.Equal(t, ranked, again, "input order does not matter")
}

func TestCandidateList_Empty(t *testing.T) {
	var c CandidateList

	assert.Nil(t, c.Best())
	assert.False(t, c.IsAmbiguous())
}
