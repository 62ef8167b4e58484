// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// EntryKind identifies which variant of [Entry] a value is.
// The numeric values double as the wire tag of the entry.
type EntryKind uint8

const (
	// KindClass is a (possibly nested) class.
	KindClass EntryKind = 0
	// KindField is a field declared by a class.
	KindField EntryKind = 1
	// KindMethod is a method declared by a class.
	KindMethod EntryKind = 2
	// KindLocalVariable is a local variable or parameter of a method.
	KindLocalVariable EntryKind = 3
)

func (k EntryKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindLocalVariable:
		return "local"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Entry identifies one obfuscated symbol.
//
// The set of implementations is closed: [ClassEntry], [FieldEntry],
// [MethodEntry] and [LocalVariableEntry]. All of them are plain comparable
// values, so two entries are equal exactly when they describe the same
// symbol, and entries can be used directly as map keys.
type Entry interface {
	// Kind reports the variant of the entry.
	Kind() EntryKind
	// SimpleName is the obfuscated name of the symbol itself.
	SimpleName() string
	// Parent returns the immediately enclosing entry, or nil for a
	// top-level class.
	Parent() Entry
	// String renders the entry in the textual form accepted by ParseEntry.
	String() string

	isEntry()
}

// ClassEntry is a class. Outer is nil for top-level classes and holds the
// enclosing ClassEntry for nested ones.
type ClassEntry struct {
	Outer Entry
	Name  string
}

// FieldEntry is a field of Owner with the JVM type descriptor Desc.
type FieldEntry struct {
	Owner ClassEntry
	Name  string
	Desc  string
}

// MethodEntry is a method of Owner with the JVM method descriptor Desc.
type MethodEntry struct {
	Owner ClassEntry
	Name  string
	Desc  string
}

// LocalVariableEntry is a local variable slot of Owner. Parameter marks
// method arguments. Obfuscated locals carry no usable name, so the slot
// index is the identity.
type LocalVariableEntry struct {
	Owner     MethodEntry
	Index     int
	Parameter bool
}

// NewClassEntry builds a top-level class entry.
func NewClassEntry(name string) ClassEntry {
	return ClassEntry{Name: name}
}

// NestedClass builds a class entry nested inside c.
func (c ClassEntry) NestedClass(name string) ClassEntry {
	return ClassEntry{Outer: c, Name: name}
}

// Field builds a field entry owned by c.
func (c ClassEntry) Field(name, desc string) FieldEntry {
	return FieldEntry{Owner: c, Name: name, Desc: desc}
}

// Method builds a method entry owned by c.
func (c ClassEntry) Method(name, desc string) MethodEntry {
	return MethodEntry{Owner: c, Name: name, Desc: desc}
}

// Local builds a local variable entry owned by m.
func (m MethodEntry) Local(index int) LocalVariableEntry {
	return LocalVariableEntry{Owner: m, Index: index}
}

// Param builds a parameter entry owned by m.
func (m MethodEntry) Param(index int) LocalVariableEntry {
	return LocalVariableEntry{Owner: m, Index: index, Parameter: true}
}

func (ClassEntry) Kind() EntryKind         { return KindClass }
func (FieldEntry) Kind() EntryKind         { return KindField }
func (MethodEntry) Kind() EntryKind        { return KindMethod }
func (LocalVariableEntry) Kind() EntryKind { return KindLocalVariable }

func (c ClassEntry) SimpleName() string  { return c.Name }
func (f FieldEntry) SimpleName() string  { return f.Name }
func (m MethodEntry) SimpleName() string { return m.Name }
func (l LocalVariableEntry) SimpleName() string {
	if l.Parameter {
		return "arg" + strconv.Itoa(l.Index)
	}
	return "var" + strconv.Itoa(l.Index)
}

func (c ClassEntry) Parent() Entry         { return c.Outer }
func (f FieldEntry) Parent() Entry         { return f.Owner }
func (m MethodEntry) Parent() Entry        { return m.Owner }
func (l LocalVariableEntry) Parent() Entry { return l.Owner }

func (ClassEntry) isEntry()         {}
func (FieldEntry) isEntry()         {}
func (MethodEntry) isEntry()        {}
func (LocalVariableEntry) isEntry() {}

// FullName returns the slash-separated binary name of the class, joining
// nested classes with '$'.
func (c ClassEntry) FullName() string {
	if outer, ok := c.Outer.(ClassEntry); ok {
		return outer.FullName() + "$" + c.Name
	}
	return c.Name
}

func (c ClassEntry) String() string {
	return c.FullName()
}

func (f FieldEntry) String() string {
	return f.Owner.String() + "." + f.Name + ":" + f.Desc
}

func (m MethodEntry) String() string {
	return m.Owner.String() + "." + m.Name + m.Desc
}

func (l LocalVariableEntry) String() string {
	if l.Parameter {
		return l.Owner.String() + "#p" + strconv.Itoa(l.Index)
	}
	return l.Owner.String() + "#" + strconv.Itoa(l.Index)
}

// Ancestry returns the chain of entries from the root class down to e
// itself. It panics on a nil entry: entries are produced by trusted code and
// a missing one is a bug in the caller.
func Ancestry(e Entry) []Entry {
	if e == nil {
		panic("models: ancestry of nil entry")
	}

	depth := 0
	for cur := e; cur != nil; cur = cur.Parent() {
		depth++
	}

	chain := make([]Entry, depth)
	for cur := e; cur != nil; cur = cur.Parent() {
		depth--
		chain[depth] = cur
	}

	return chain
}

// Root returns the top-level class that e belongs to.
func Root(e Entry) Entry {
	return Ancestry(e)[0]
}

// ParseEntry parses the textual entry form produced by Entry.String:
//
//	a/b          class (nested classes separated by '$')
//	a/b.f:I      field
//	a/b.m(I)V    method
//	a/b.m(I)V#1  local variable slot 1 of the method
//	a/b.m(I)V#p1 parameter in slot 1 of the method
func ParseEntry(s string) (Entry, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty entry", ErrInvalidEntry)
	}

	dot := strings.LastIndexByte(s, '.')
	if dot < 0 {
		return parseClass(s)
	}

	owner, err := parseClass(s[:dot])
	if err != nil {
		return nil, err
	}
	member := s[dot+1:]

	if paren := strings.IndexByte(member, '('); paren >= 0 {
		desc := member[paren:]
		local, param := -1, false
		if hash := strings.LastIndexByte(desc, '#'); hash >= 0 {
			slot := desc[hash+1:]
			if strings.HasPrefix(slot, "p") {
				param, slot = true, slot[1:]
			}
			local, err = strconv.Atoi(slot)
			if err != nil || local < 0 {
				return nil, fmt.Errorf("%w: bad local index in %q", ErrInvalidEntry, s)
			}
			desc = desc[:hash]
		}
		if paren == 0 || !strings.Contains(desc, ")") {
			return nil, fmt.Errorf("%w: bad method %q", ErrInvalidEntry, s)
		}

		method := owner.Method(member[:paren], desc)
		switch {
		case local >= 0 && param:
			return method.Param(local), nil
		case local >= 0:
			return method.Local(local), nil
		}
		return method, nil
	}

	if colon := strings.IndexByte(member, ':'); colon > 0 && colon < len(member)-1 {
		return owner.Field(member[:colon], member[colon+1:]), nil
	}

	return nil, fmt.Errorf("%w: member %q needs a descriptor", ErrInvalidEntry, s)
}

func parseClass(s string) (ClassEntry, error) {
	parts := strings.Split(s, "$")
	for _, p := range parts {
		if p == "" {
			return ClassEntry{}, fmt.Errorf("%w: bad class name %q", ErrInvalidEntry, s)
		}
	}

	class := NewClassEntry(parts[0])
	for _, p := range parts[1:] {
		class = class.NestedClass(p)
	}

	return class, nil
}
