package codec

import (
	"fmt"
	"math"

	"github.com/MKhiriev/go-mapping-keeper/models"
)

// maxEntryDepth bounds the parent chain accepted from the wire.
const maxEntryDepth = 64

// WriteEntry encodes e as: kind byte, then (when includeParent is set) a
// bool telling whether a parent follows and the parent itself, then the
// simple name and a kind-specific tail.
func WriteEntry(w *Writer, e models.Entry, includeParent bool) {
	w.Uint8(uint8(e.Kind()))

	if includeParent {
		parent := e.Parent()
		w.Bool(parent != nil)
		if parent != nil {
			WriteEntry(w, parent, true)
		}
	}

	w.String(e.SimpleName())

	switch v := e.(type) {
	case models.FieldEntry:
		w.String(v.Desc)
	case models.MethodEntry:
		w.String(v.Desc)
	case models.LocalVariableEntry:
		if v.Index < 0 || v.Index > math.MaxUint16 {
			w.Fail(fmt.Errorf("%w: %d", ErrIndexOutOfRange, v.Index))
			return
		}
		w.Uint16(uint16(v.Index))
		w.Bool(v.Parameter)
	}
}

// ReadEntry decodes an entry written by WriteEntry. When includeParent is
// false the entry is attached to parent, which may be nil for a top-level
// class. It returns nil once r has failed.
func ReadEntry(r *Reader, parent models.Entry, includeParent bool) models.Entry {
	return readEntry(r, parent, includeParent, 0)
}

func readEntry(r *Reader, parent models.Entry, includeParent bool, depth int) models.Entry {
	if depth > maxEntryDepth {
		r.Fail(ErrEntryTooDeep)
		return nil
	}

	kind := models.EntryKind(r.Uint8())
	if includeParent && r.Bool() {
		parent = readEntry(r, nil, true, depth+1)
	}
	name := r.String()
	if r.Err() != nil {
		return nil
	}

	switch kind {
	case models.KindClass:
		if parent == nil {
			return models.NewClassEntry(name)
		}
		outer, ok := parent.(models.ClassEntry)
		if !ok {
			r.Fail(fmt.Errorf("%w: class inside %s", ErrInvalidParent, parent.Kind()))
			return nil
		}
		return outer.NestedClass(name)

	case models.KindField, models.KindMethod:
		owner, ok := parent.(models.ClassEntry)
		if !ok {
			r.Fail(fmt.Errorf("%w: %s needs a class owner", ErrInvalidParent, kind))
			return nil
		}
		desc := r.String()
		if r.Err() != nil {
			return nil
		}
		if kind == models.KindField {
			return owner.Field(name, desc)
		}
		return owner.Method(name, desc)

	case models.KindLocalVariable:
		owner, ok := parent.(models.MethodEntry)
		if !ok {
			r.Fail(fmt.Errorf("%w: local variable needs a method owner", ErrInvalidParent))
			return nil
		}
		index := int(r.Uint16())
		param := r.Bool()
		if r.Err() != nil {
			return nil
		}
		if param {
			return owner.Param(index)
		}
		return owner.Local(index)

	default:
		r.Fail(fmt.Errorf("%w: %d", ErrUnknownEntryKind, kind))
		return nil
	}
}

// WriteMapping encodes m as name, doc and access byte. Empty strings stand
// for unset fields.
func WriteMapping(w *Writer, m models.Mapping) {
	w.String(m.TargetName)
	w.String(m.Doc)
	w.Uint8(uint8(m.Access))
}

func ReadMapping(r *Reader) models.Mapping {
	m := models.Mapping{TargetName: r.String(), Doc: r.String()}
	m.Access = readAccess(r)
	return m
}

func readAccess(r *Reader) models.AccessModifier {
	a := models.AccessModifier(r.Uint8())
	if a > models.AccessPrivate {
		r.Fail(fmt.Errorf("%w: %d", ErrInvalidAccess, a))
		return models.AccessUnchanged
	}
	return a
}

// WriteEntryChange encodes the target entry, a flags byte holding two bits
// per tristate (name, doc, access from the low bits up) and the values of the
// tristates that are set, in the same order.
func WriteEntryChange(w *Writer, c models.EntryChange) {
	WriteEntry(w, c.Target, true)

	flags := uint8(c.Name.Kind) | uint8(c.Doc.Kind)<<2 | uint8(c.Access.Kind)<<4
	w.Uint8(flags)

	if c.Name.IsSet() {
		w.String(c.Name.Value)
	}
	if c.Doc.IsSet() {
		w.String(c.Doc.Value)
	}
	if c.Access.IsSet() {
		w.Uint8(uint8(c.Access.Value))
	}
}

func ReadEntryChange(r *Reader) models.EntryChange {
	target := ReadEntry(r, nil, true)
	flags := r.Uint8()
	if r.Err() != nil {
		return models.EntryChange{}
	}

	change := models.Modify(target)

	switch tristate(r, flags) {
	case models.Reset:
		change = change.ClearName()
	case models.Set:
		change = change.WithName(r.String())
	}
	switch tristate(r, flags>>2) {
	case models.Reset:
		change = change.ClearDoc()
	case models.Set:
		change = change.WithDoc(r.String())
	}
	switch tristate(r, flags>>4) {
	case models.Reset:
		change = change.ClearAccess()
	case models.Set:
		change = change.WithAccess(readAccess(r))
	}

	if r.Err() != nil {
		return models.EntryChange{}
	}
	return change
}

func tristate(r *Reader, bits uint8) models.TristateKind {
	kind := models.TristateKind(bits & 0x3)
	if kind > models.Set {
		r.Fail(fmt.Errorf("%w: %d", ErrInvalidTristate, kind))
		return models.Unchanged
	}
	return kind
}
