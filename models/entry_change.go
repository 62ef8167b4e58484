// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// TristateKind says what a [Tristate] does to one field of a mapping.
// The numeric values are part of the wire format.
type TristateKind uint8

const (
	// Unchanged leaves the field as it is.
	Unchanged TristateKind = 0
	// Reset clears the field.
	Reset TristateKind = 1
	// Set replaces the field with Tristate.Value.
	Set TristateKind = 2
)

func (k TristateKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Reset:
		return "reset"
	case Set:
		return "set"
	default:
		return fmt.Sprintf("tristate(%d)", uint8(k))
	}
}

// Tristate is a single-field edit: keep, clear or set a value.
type Tristate[T comparable] struct {
	Kind  TristateKind
	Value T
}

// Apply returns the new value of a field that currently holds old.
func (t Tristate[T]) Apply(old T) T {
	switch t.Kind {
	case Reset:
		var zero T
		return zero
	case Set:
		return t.Value
	default:
		return old
	}
}

func (t Tristate[T]) IsUnchanged() bool { return t.Kind == Unchanged }
func (t Tristate[T]) IsReset() bool     { return t.Kind == Reset }
func (t Tristate[T]) IsSet() bool       { return t.Kind == Set }

func unchanged[T comparable]() Tristate[T] { return Tristate[T]{} }
func reset[T comparable]() Tristate[T]     { return Tristate[T]{Kind: Reset} }
func set[T comparable](v T) Tristate[T]    { return Tristate[T]{Kind: Set, Value: v} }

// EntryChange is an edit of the mapping of one Entry. A change is built from
// Modify and the With*/Clear* methods; several fields may be edited at
// once. The zero tristates make a no-op.
//
// The same value is applied locally, sent over the wire and applied by every
// peer, so the resulting mapping never depends on where the edit came from.
type EntryChange struct {
	Target Entry
	Name   Tristate[string]
	Access Tristate[AccessModifier]
	Doc    Tristate[string]
}

// Modify starts a no-op change of target.
func Modify(target Entry) EntryChange {
	return EntryChange{
		Target: target,
		Name:   unchanged[string](),
		Access: unchanged[AccessModifier](),
		Doc:    unchanged[string](),
	}
}

func (c EntryChange) WithName(name string) EntryChange {
	c.Name = set(name)
	return c
}

func (c EntryChange) ClearName() EntryChange {
	c.Name = reset[string]()
	return c
}

func (c EntryChange) WithAccess(access AccessModifier) EntryChange {
	c.Access = set(access)
	return c
}

func (c EntryChange) ClearAccess() EntryChange {
	c.Access = reset[AccessModifier]()
	return c
}

func (c EntryChange) WithDoc(doc string) EntryChange {
	c.Doc = set(doc)
	return c
}

func (c EntryChange) ClearDoc() EntryChange {
	c.Doc = reset[string]()
	return c
}

// IsNoop reports whether the change leaves every field untouched.
func (c EntryChange) IsNoop() bool {
	return c.Name.IsUnchanged() && c.Access.IsUnchanged() && c.Doc.IsUnchanged()
}

// Apply returns the mapping that results from applying c to old. Setting a
// name trims it the same way NewMapping does.
func (c EntryChange) Apply(old Mapping) Mapping {
	next := Mapping{
		TargetName: c.Name.Apply(old.TargetName),
		Access:     c.Access.Apply(old.Access),
		Doc:        c.Doc.Apply(old.Doc),
	}
	if c.Name.IsSet() {
		next = next.WithName(next.TargetName)
	}
	return next
}

func (c EntryChange) String() string {
	return fmt.Sprintf("EntryChange{target: %v, name: %s, access: %s, doc: %s}",
		c.Target, c.Name.Kind, c.Access.Kind, c.Doc.Kind)
}

// EntryResolver maps an entry to its canonical form, for example an
// overriding method to the root declaration it inherits its name from.
type EntryResolver interface {
	Resolve(entry Entry) Entry
}

// IdentityResolver resolves every entry to itself.
type IdentityResolver struct{}

func (IdentityResolver) Resolve(entry Entry) Entry { return entry }
