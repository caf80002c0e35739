package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apicompat/internal/filter"
	"apicompat/internal/mapping"
	"apicompat/internal/symbol"
)

func mapSides(t *testing.T, cfg filter.Config, libs ...*symbol.Library) (*mapping.Tree, *Context) {
	t.Helper()

	f, err := filter.New(cfg)
	require.NoError(t, err)

	tree, err := mapping.NewMapper(f, cfg.AlwaysDiffMembers).Map(libs...)
	require.NoError(t, err)

	return tree, &Context{Filter: f, Sides: tree.Sides}
}

func nodeAt(t *testing.T, tree *mapping.Tree, key string) mapping.Node {
	t.Helper()

	n := tree.Find(key)
	require.NotNil(t, n, "no node %s", key)

	return n
}

func lib(name string, build func(typ *symbol.Symbol)) *symbol.Library {
	ns := symbol.NewNamespace("N")
	build(ns.AddType("C", symbol.Public))

	return symbol.NewLibrary(name, ns)
}

func TestMemberMustExist(t *testing.T) {
	left := lib("v1", func(c *symbol.Symbol) {
		c.AddMethod("M", symbol.Public)
		c.AddProperty("P", "System.Int32", symbol.Public, "get_P")
		c.AddMethod("Dispose", symbol.Public).ExplicitInterface = "System.IDisposable"
	})
	right := lib("v2", func(*symbol.Symbol) {})

	tree, ctx := mapSides(t, filter.DefaultConfig(), left, right)
	rule := MemberMustExist{}

	got, err := rule.Diff(ctx, nodeAt(t, tree, "M:N.C.M()"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Removed, got[0].Type)
	assert.Equal(t, []int{0, 1}, got[0].Sides)
	assert.Equal(t, "Member 'N.C.M()' does not exist in the implementation but it does exist in the contract.", got[0].Message)

	got, err = rule.Diff(ctx, nodeAt(t, tree, "P:N.C.P"))
	require.NoError(t, err)
	assert.Empty(t, got, "properties are reported through their accessors")

	got, err = rule.Diff(ctx, nodeAt(t, tree, "M:N.C.get_P()"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "accessor of property 'P'")

	got, err = rule.Diff(ctx, nodeAt(t, tree, "M:N.C.System#IDisposable#Dispose()"))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = rule.Diff(ctx, nodeAt(t, tree, "T:N.C"))
	require.NoError(t, err)
	assert.Empty(t, got, "types are not members")
}

func TestMemberMustExist_PropertyWithoutAccessors(t *testing.T) {
	left := lib("v1", func(c *symbol.Symbol) {
		c.Children = append(c.Children,
			&symbol.Symbol{Name: "Bare", Kind: symbol.KindProperty, Visibility: symbol.Public, ReturnType: "System.Int32"},
			&symbol.Symbol{Name: "Fired", Kind: symbol.KindEvent, Visibility: symbol.Public, Accessors: []string{"add_Fired"}},
		)
		c.AddMethod("add_Fired", symbol.Private, "System.EventHandler")
	})
	right := lib("v2", func(*symbol.Symbol) {})

	tree, ctx := mapSides(t, filter.DefaultConfig(), left, right)
	rule := MemberMustExist{}

	got, err := rule.Diff(ctx, nodeAt(t, tree, "P:N.C.Bare"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Removed, got[0].Type)
	assert.Equal(t, "Member 'N.C.Bare' does not exist in the implementation but it does exist in the contract.", got[0].Message)

	got, err = rule.Diff(ctx, nodeAt(t, tree, "E:N.C.Fired"))
	require.NoError(t, err)
	require.Len(t, got, 1, "a filtered-out accessor does not cover the event")
	assert.Contains(t, got[0].Message, "'N.C.Fired'")
}

func TestMemberMustExist_SideNames(t *testing.T) {
	left := lib("v1", func(c *symbol.Symbol) { c.AddField("F", "System.Int32", symbol.Public) })
	right := lib("v2", func(*symbol.Symbol) {})
	third := lib("v3", func(c *symbol.Symbol) { c.AddField("F", "System.Int32", symbol.Public) })

	tree, ctx := mapSides(t, filter.DefaultConfig(), left, right, third)
	ctx.SideNames = []string{"net8.0"}

	got, err := MemberMustExist{}.Diff(ctx, nodeAt(t, tree, "F:N.C.F"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Member 'N.C.F' does not exist in the implementation 1 but it does exist in the net8.0.", got[0].Message)
}

func TestTypeMustExist(t *testing.T) {
	ns := symbol.NewNamespace("N")
	ns.AddType("Gone", symbol.Public).AddMethod("M", symbol.Public)
	ns.AddType("Kept", symbol.Public)
	gone := symbol.NewNamespace("Old")
	gone.AddType("T", symbol.Public)
	left := symbol.NewLibrary("v1", ns, gone)

	ns2 := symbol.NewNamespace("N")
	ns2.AddType("Kept", symbol.Public)
	right := symbol.NewLibrary("v2", ns2)

	tree, ctx := mapSides(t, filter.DefaultConfig(), left, right)
	rule := TypeMustExist{}

	got, err := rule.Diff(ctx, nodeAt(t, tree, "T:N.Gone"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Removed, got[0].Type)
	assert.Equal(t, "Type 'N.Gone' does not exist in the implementation but it does exist in the contract.", got[0].Message)

	got, err = rule.Diff(ctx, nodeAt(t, tree, "N:Old"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "Namespace 'Old'")

	got, err = rule.Diff(ctx, nodeAt(t, tree, "T:N.Kept"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Side A has Foo(int) only, side B has Foo(string) only.
func TestParameterTypeCannotChange_SignatureChange(t *testing.T) {
	left := lib("v1", func(c *symbol.Symbol) { c.AddMethod("Foo", symbol.Public, "System.Int32") })
	right := lib("v2", func(c *symbol.Symbol) { c.AddMethod("Foo", symbol.Public, "System.String") })

	tree, ctx := mapSides(t, filter.DefaultConfig(), left, right)
	rule := ParameterTypeCannotChange{}

	got, err := rule.Diff(ctx, nodeAt(t, tree, "M:N.C.Foo(System.Int32)"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Changed, got[0].Type)
	assert.Contains(t, got[0].Message, "N.C.Foo(System.Int32)")
	assert.Contains(t, got[0].Message, "N.C.Foo(System.String)")
	assert.Equal(t, []int{0, 1}, got[0].Sides)

	got, err = rule.Diff(ctx, nodeAt(t, tree, "M:N.C.Foo(System.String)"))
	require.NoError(t, err)
	assert.Empty(t, got, "the replacement itself is not reported")

	assert.True(t, rule.Metadata().Advisory)
}

func TestParameterTypeCannotChange_Candidates(t *testing.T) {
	left := lib("v1", func(c *symbol.Symbol) {
		c.AddMethod("Foo", symbol.Public, "System.Int32", "System.String")
		c.AddMethod("Bar", symbol.Public, "System.Int32")
	})
	right := lib("v2", func(c *symbol.Symbol) {
		c.AddMethod("Foo", symbol.Public, "System.Object", "System.Object")
		c.AddMethod("Foo", symbol.Public, "System.Int64", "System.String")
		c.AddMethod("Foo", symbol.Public, "System.Int32")
		c.AddMethod("Foo", symbol.Public, "System.Int32", "System.String").WithGenericArity(1)
		c.AddMethod("Baz", symbol.Public, "System.String")
	})

	tree, ctx := mapSides(t, filter.DefaultConfig(), left, right)
	rule := ParameterTypeCannotChange{}

	got, err := rule.Diff(ctx, nodeAt(t, tree, "M:N.C.Foo(System.Int32,System.String)"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "N.C.Foo(System.Int64, System.String)", "closest parameter list wins")
	assert.NotContains(t, got[0].Message, "ambiguous")

	got, err = rule.Diff(ctx, nodeAt(t, tree, "M:N.C.Bar(System.Int32)"))
	require.NoError(t, err)
	assert.Empty(t, got, "different names never pair")
}

func TestParameterTypeCannotChange_AmbiguousPairing(t *testing.T) {
	left := lib("v1", func(c *symbol.Symbol) { c.AddMethod("Foo", symbol.Public, "System.Int32", "System.Int32") })
	right := lib("v2", func(c *symbol.Symbol) {
		c.AddMethod("Foo", symbol.Public, "System.String", "System.Int32")
		c.AddMethod("Foo", symbol.Public, "System.Int32", "System.String")
	})

	tree, ctx := mapSides(t, filter.DefaultConfig(), left, right)

	got, err := ParameterTypeCannotChange{}.Diff(ctx, nodeAt(t, tree, "M:N.C.Foo(System.Int32,System.Int32)"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t,
		"Method 'N.C.Foo(System.Int32, System.Int32)' in the contract changed its signature to "+
			"'N.C.Foo(System.Int32, System.String)' in the implementation. "+
			"The pairing is ambiguous: 'N.C.Foo(System.String, System.Int32)' matches equally well.",
		got[0].Message)
}

func TestParameterTypeCannotChange_PerSide(t *testing.T) {
	contract := lib("v1", func(c *symbol.Symbol) { c.AddMethod("Foo", symbol.Public, "System.Int32") })
	kept := lib("v2", func(c *symbol.Symbol) { c.AddMethod("Foo", symbol.Public, "System.Int32") })
	changed := lib("v3", func(c *symbol.Symbol) { c.AddMethod("Foo", symbol.Public, "System.String") })

	tree, ctx := mapSides(t, filter.DefaultConfig(), contract, kept, changed)

	got, err := ParameterTypeCannotChange{}.Diff(ctx, nodeAt(t, tree, "M:N.C.Foo(System.Int32)"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []int{0, 2}, got[0].Sides)
	assert.Equal(t,
		"Method 'N.C.Foo(System.Int32)' in the contract changed its signature to "+
			"'N.C.Foo(System.String)' in the implementation 2.",
		got[0].Message)
}

func TestCannotReduceVisibility(t *testing.T) {
	left := lib("v1", func(c *symbol.Symbol) {
		c.AddMethod("M", symbol.Public)
		c.AddMethod("P", symbol.Protected)
	})
	right := lib("v2", func(c *symbol.Symbol) {
		c.AddMethod("M", symbol.Protected)
		c.AddMethod("P", symbol.Public)
	})

	tree, ctx := mapSides(t, filter.DefaultConfig(), left, right)
	rule := CannotReduceVisibility{}

	got, err := rule.Diff(ctx, nodeAt(t, tree, "M:N.C.M()"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Incompatible, got[0].Type)
	assert.Equal(t,
		"Visibility of method 'N.C.M()' is reduced from 'public' in the contract to 'protected' in the implementation.",
		got[0].Message)

	got, err = rule.Diff(ctx, nodeAt(t, tree, "M:N.C.P()"))
	require.NoError(t, err)
	assert.Empty(t, got, "widening is compatible")
}

func TestCannotReduceVisibility_InvalidVisibility(t *testing.T) {
	left := lib("v1", func(c *symbol.Symbol) { c.AddMethod("M", symbol.Public) })
	right := lib("v2", func(c *symbol.Symbol) { c.AddMethod("M", symbol.Public) })

	tree, ctx := mapSides(t, filter.DefaultConfig(), left, right)

	node := nodeAt(t, tree, "M:N.C.M()")
	node.Base().Element(1).Visibility = symbol.Public | symbol.Internal

	_, err := CannotReduceVisibility{}.Diff(ctx, node)

	var sideErr *SideError
	require.True(t, errors.As(err, &sideErr))
	assert.Equal(t, 1, sideErr.Side)
}

func TestCannotAddAttribute(t *testing.T) {
	left := lib("v1", func(c *symbol.Symbol) {
		c.AddMethod("M", symbol.Public).WithAttributes(symbol.Attribute{Type: "Acme.KeepAttribute"})
	})
	right := lib("v2", func(c *symbol.Symbol) {
		c.AddMethod("M", symbol.Public).WithAttributes(
			symbol.Attribute{Type: "Acme.KeepAttribute"},
			symbol.Attribute{Type: "Acme.SealedAttribute"},
			symbol.Attribute{Type: "Acme.SealedAttribute"},
			symbol.Attribute{Type: "System.ObsoleteAttribute"},
			symbol.Attribute{Type: "System.Runtime.CompilerServices.NullableAttribute"},
		)
	})

	cfg := filter.DefaultConfig()
	cfg.ExcludeAttributes = false
	tree, ctx := mapSides(t, cfg, left, right)

	got, err := CannotAddAttribute{}.Diff(ctx, nodeAt(t, tree, "M:N.C.M()"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Incompatible, got[0].Type)
	assert.Equal(t, "Attribute 'Acme.SealedAttribute' exists on 'N.C.M()' in the implementation but not in the contract.", got[0].Message)

	tree, ctx = mapSides(t, filter.DefaultConfig(), left, right)
	got, err = CannotAddAttribute{}.Diff(ctx, nodeAt(t, tree, "M:N.C.M()"))
	require.NoError(t, err)
	assert.Empty(t, got, "attributes are excluded by default")
}

func TestCannotRemoveAttribute(t *testing.T) {
	left := lib("v1", func(c *symbol.Symbol) {
		c.AddMethod("M", symbol.Public).WithAttributes(
			symbol.Attribute{Type: "Acme.KeepAttribute"},
			symbol.Attribute{Type: "Acme.SealedAttribute"},
			symbol.Attribute{Type: "System.ObsoleteAttribute"},
			symbol.Attribute{Type: "System.Runtime.CompilerServices.NullableAttribute"},
		)
	})
	right := lib("v2", func(c *symbol.Symbol) {
		c.AddMethod("M", symbol.Public).WithAttributes(symbol.Attribute{Type: "Acme.KeepAttribute"})
	})

	cfg := filter.DefaultConfig()
	cfg.ExcludeAttributes = false
	tree, ctx := mapSides(t, cfg, left, right)

	got, err := CannotRemoveAttribute{}.Diff(ctx, nodeAt(t, tree, "M:N.C.M()"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Incompatible, got[0].Type)
	assert.Equal(t, []int{0, 1}, got[0].Sides)
	assert.Equal(t, "Attribute 'Acme.SealedAttribute' exists on 'N.C.M()' in the contract but not in the implementation.", got[0].Message)

	got, err = CannotRemoveAttribute{}.Diff(ctx, nodeAt(t, tree, "N:N"))
	require.NoError(t, err)
	assert.Empty(t, got)

	cfg.IgnoredAttributes = []string{"Acme.SealedAttribute"}
	tree, ctx = mapSides(t, cfg, left, right)
	got, err = CannotRemoveAttribute{}.Diff(ctx, nodeAt(t, tree, "M:N.C.M()"))
	require.NoError(t, err)
	assert.Empty(t, got, "ignored attributes are not compared")

	tree, ctx = mapSides(t, filter.DefaultConfig(), left, right)
	got, err = CannotRemoveAttribute{}.Diff(ctx, nodeAt(t, tree, "M:N.C.M()"))
	require.NoError(t, err)
	assert.Empty(t, got, "attributes are excluded by default")
}

func TestCannotChangeAttribute(t *testing.T) {
	uses := func(types ...string) symbol.Attribute {
		return symbol.Attribute{Type: "Acme.UsesAttribute", TypeOfArgs: types}
	}

	left := lib("v1", func(c *symbol.Symbol) {
		c.AddMethod("M", symbol.Public).WithAttributes(uses("Acme.Widget"))
		c.AddMethod("Same", symbol.Public).WithAttributes(uses("Acme.Widget"), uses("Acme.Gadget"))
	})
	right := lib("v2", func(c *symbol.Symbol) {
		c.AddMethod("M", symbol.Public).WithAttributes(uses("Acme.Gadget"))
		c.AddMethod("Same", symbol.Public).WithAttributes(uses("Acme.Gadget"), uses("Acme.Widget"))
	})

	cfg := filter.DefaultConfig()
	cfg.ExcludeAttributes = false
	tree, ctx := mapSides(t, cfg, left, right)

	got, err := CannotChangeAttribute{}.Diff(ctx, nodeAt(t, tree, "M:N.C.M()"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Incompatible, got[0].Type)
	assert.Equal(t,
		"Attribute 'Acme.UsesAttribute' on 'N.C.M()' changed from 'Acme.UsesAttribute(typeof(Acme.Widget))' "+
			"in the contract to 'Acme.UsesAttribute(typeof(Acme.Gadget))' in the implementation.",
		got[0].Message)

	got, err = CannotChangeAttribute{}.Diff(ctx, nodeAt(t, tree, "M:N.C.Same()"))
	require.NoError(t, err)
	assert.Empty(t, got, "application order does not matter")

	got, err = CannotRemoveAttribute{}.Diff(ctx, nodeAt(t, tree, "M:N.C.M()"))
	require.NoError(t, err)
	assert.Empty(t, got, "a changed attribute is not a removed one")
}

func TestElementAdded(t *testing.T) {
	left := lib("v1", func(*symbol.Symbol) {})
	right := lib("v2", func(c *symbol.Symbol) { c.AddMethod("New", symbol.Public) })

	tree, ctx := mapSides(t, filter.DefaultConfig(), left, right)

	got, err := ElementAdded{}.Diff(ctx, nodeAt(t, tree, "M:N.C.New()"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Added, got[0].Type)
	assert.Equal(t, "method 'N.C.New()' exists in the implementation but not in the contract.", got[0].Message)

	got, err = ElementAdded{}.Diff(ctx, nodeAt(t, tree, "T:N.C"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDifferenceType(t *testing.T) {
	assert.Less(t, Unknown, Identical)
	assert.Less(t, Identical, Added)
	assert.Less(t, Added, Removed)
	assert.Less(t, Removed, Changed)
	assert.Less(t, Changed, Incompatible)

	assert.Equal(t, "Incompatible", Incompatible.String())
	assert.Equal(t, "DifferenceType(9)", DifferenceType(9).String())

	assert.False(t, Unknown.IsReportable())
	assert.False(t, Identical.IsReportable())
	assert.True(t, Added.IsReportable())

	got, err := ParseDifferenceType("removed")
	require.NoError(t, err)
	assert.Equal(t, Removed, got)

	_, err = ParseDifferenceType("broken")
	assert.Error(t, err)

	text, err := Changed.MarshalText()
	require.NoError(t, err)

	var back DifferenceType
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, Changed, back)
}
