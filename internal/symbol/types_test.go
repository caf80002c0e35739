package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCollections() *Library {
	ns := NewNamespace("System.Collections.Generic")

	list := ns.AddType("List", Public).WithGenericArity(1)
	list.AddConstructor(Public)
	list.AddMethod("Add", Public, "T")
	list.AddProperty("Count", "System.Int32", Public, "get_Count")
	list.AddEvent("Changed", "System.EventHandler", Public)

	enumerator := list.AddType("Enumerator", Public)
	enumerator.AddMethod("MoveNext", Public)

	return NewLibrary("v1", ns)
}

func TestLibrary_Link(t *testing.T) {
	lib := buildCollections()

	ns := lib.Namespaces[0]
	list := ns.Children[0]
	require.Equal(t, "List", list.Name)

	assert.Same(t, ns, list.Container)
	assert.Same(t, lib, list.Library())
	assert.Same(t, list, list.Members()[0].ContainingType())
	assert.Same(t, ns, list.Members()[0].Namespace())

	enumerator := list.Types()[0]
	assert.True(t, enumerator.IsNestedType())
	assert.False(t, list.IsNestedType())
	assert.Equal(t, "System.Collections.Generic.List.Enumerator", enumerator.FullName())

	assert.Same(t, list, lib.LookupType("System.Collections.Generic.List"))
	assert.Same(t, enumerator, lib.LookupType("System.Collections.Generic.List.Enumerator"))
	assert.Nil(t, lib.LookupType("System.String"))
}

func TestLibrary_LinkAccessors(t *testing.T) {
	lib := buildCollections()
	list := lib.Namespaces[0].Children[0]

	byName := map[string]*Symbol{}
	for _, m := range list.Members() {
		byName[m.Name] = m
	}

	require.Contains(t, byName, "get_Count")
	require.Contains(t, byName, "add_Changed")
	assert.Same(t, byName["Count"], byName["get_Count"].AccessorOf())
	assert.Same(t, byName["Changed"], byName["add_Changed"].AccessorOf())
	assert.Same(t, byName["Changed"], byName["remove_Changed"].AccessorOf())
	assert.Nil(t, byName["Add"].AccessorOf())
	assert.Equal(t, []Parameter{{Type: "System.EventHandler"}}, byName["remove_Changed"].Parameters)
}

func TestLibrary_Walk(t *testing.T) {
	lib := buildCollections()

	var names []string
	lib.Walk(func(s *Symbol) bool {
		names = append(names, s.Name)
		return s.Name != "Enumerator"
	})

	assert.Equal(t, "System.Collections.Generic", names[0])
	assert.Contains(t, names, "Enumerator")
	assert.NotContains(t, names, "MoveNext")
}

func TestSymbol_GlobalNamespaceFullName(t *testing.T) {
	ns := NewNamespace("")
	typ := ns.AddType("T", Public)
	m := typ.AddMethod("M", Public)
	NewLibrary("side", ns)

	assert.Equal(t, "T", typ.FullName())
	assert.Equal(t, "T.M", m.FullName())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"namespace", KindNamespace, false},
		{"Class", KindType, false},
		{"interface", KindType, false},
		{"ctor", KindMethod, false},
		{"method", KindMethod, false},
		{"field", KindField, false},
		{"property", KindProperty, false},
		{" event ", KindEvent, false},
		{"operator", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseKind(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "namespace", KindNamespace.String())
	assert.Equal(t, "property", KindProperty.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
	assert.True(t, KindEvent.IsMember())
	assert.False(t, KindType.IsMember())
}

func TestSymbol_AccessorMethods(t *testing.T) {
	lib := buildCollections()
	list := lib.Namespaces[0].Children[0]

	byName := map[string]*Symbol{}
	for _, m := range list.Members() {
		byName[m.Name] = m
	}

	assert.Equal(t, []*Symbol{byName["get_Count"]}, byName["Count"].AccessorMethods())
	assert.Equal(t, []*Symbol{byName["add_Changed"], byName["remove_Changed"]}, byName["Changed"].AccessorMethods())
	assert.Empty(t, byName["Add"].AccessorMethods())
}

func TestAddProperty_DefaultGetter(t *testing.T) {
	ns := NewNamespace("N")
	typ := ns.AddType("C", Public)
	p := typ.AddProperty("Size", "System.Int32", Public)
	NewLibrary("v1", ns)

	assert.Equal(t, []string{"get_Size"}, p.Accessors)

	methods := p.AccessorMethods()
	require.Len(t, methods, 1)
	assert.Equal(t, "get_Size", methods[0].Name)
	assert.Empty(t, methods[0].Parameters)
}

func TestAddProperty_SetterTakesValue(t *testing.T) {
	ns := NewNamespace("N")
	p := ns.AddType("C", Public).AddProperty("Size", "System.Int32", Public, "get_Size", "set_Size")
	NewLibrary("v1", ns)

	methods := p.AccessorMethods()
	require.Len(t, methods, 2)
	assert.Equal(t, []Parameter{{Type: "System.Int32"}}, methods[1].Parameters)
}
