package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntry(t *testing.T) {
	outer := NewClassEntry("a/b")
	inner := outer.NestedClass("c")
	method := inner.Method("m", "(ILjava/lang/String;)V")

	tests := []struct {
		name  string
		input string
		want  Entry
	}{
		{name: "top-level class", input: "a/b", want: outer},
		{name: "nested class", input: "a/b$c", want: inner},
		{name: "field", input: "a/b.f:Ljava/util/List;", want: outer.Field("f", "Ljava/util/List;")},
		{name: "method", input: "a/b$c.m(ILjava/lang/String;)V", want: method},
		{name: "local", input: "a/b$c.m(ILjava/lang/String;)V#3", want: method.Local(3)},
		{name: "parameter", input: "a/b$c.m(ILjava/lang/String;)V#p1", want: method.Param(1)},
		{name: "surrounding space", input: "  a/b  ", want: outer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntry(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEntry_Invalid(t *testing.T) {
	for _, input := range []string{
		"",
		"a$$b",
		"a.f",
		"a.f:",
		"a.(I)V",
		"a.m(I)V#x",
		"a.m(I)V#-1",
		"a.m(I#2",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseEntry(input)
			assert.ErrorIs(t, err, ErrInvalidEntry)
		})
	}
}

func TestEntry_StringRoundTrip(t *testing.T) {
	class := NewClassEntry("x").NestedClass("y")
	method := class.Method("go", "()I")

	for _, e := range []Entry{class, class.Field("f", "J"), method, method.Local(0), method.Param(2)} {
		parsed, err := ParseEntry(e.String())
		require.NoError(t, err, e.String())
		assert.Equal(t, e, parsed)
	}
}

func TestAncestry(t *testing.T) {
	outer := NewClassEntry("a")
	inner := outer.NestedClass("b")
	method := inner.Method("m", "()V")
	local := method.Local(1)

	assert.Equal(t, []Entry{outer, inner, method, local}, Ancestry(local))
	assert.Equal(t, Entry(outer), Root(local))
	assert.Equal(t, []Entry{outer}, Ancestry(outer))
	assert.Panics(t, func() { Ancestry(nil) })
}

func TestEntry_EqualityIsStructural(t *testing.T) {
	a := NewClassEntry("p").Method("m", "()V")
	b := MethodEntry{Owner: ClassEntry{Name: "p"}, Name: "m", Desc: "()V"}

	seen := map[Entry]bool{a: true}
	assert.True(t, seen[b])
	assert.NotEqual(t, Entry(a), Entry(NewClassEntry("p").Method("m", "(I)V")))
}

func TestLocalVariableEntry_SimpleName(t *testing.T) {
	m := NewClassEntry("a").Method("m", "()V")
	assert.Equal(t, "var0", m.Local(0).SimpleName())
	assert.Equal(t, "arg2", m.Param(2).SimpleName())
	assert.Equal(t, KindLocalVariable, m.Local(0).Kind())
}
