// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// AccessModifier overrides the access flags of a symbol in the remapped
// output. AccessUnchanged keeps whatever the bytecode declares.
type AccessModifier uint8

const (
	AccessUnchanged AccessModifier = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

func (a AccessModifier) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return "unchanged"
	}
}

// ParseAccessModifier is the inverse of AccessModifier.String. Unknown
// values map to AccessUnchanged and ok=false.
func ParseAccessModifier(s string) (AccessModifier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return AccessPublic, true
	case "protected":
		return AccessProtected, true
	case "private":
		return AccessPrivate, true
	case "unchanged", "":
		return AccessUnchanged, true
	default:
		return AccessUnchanged, false
	}
}

// Mapping is the deobfuscation data attached to one Entry: an optional
// target name, an optional access override and optional documentation.
//
// Mapping is an immutable value; the With* methods return modified copies.
// The zero value holds no data and is never stored in a tree.
type Mapping struct {
	TargetName string
	Access     AccessModifier
	Doc        string
}

// NewMapping returns a mapping renaming the entry to targetName. Leading and
// trailing whitespace of the name is dropped.
func NewMapping(targetName string) Mapping {
	return Mapping{TargetName: strings.TrimSpace(targetName)}
}

// IsEmpty reports whether the mapping carries no data at all.
func (m Mapping) IsEmpty() bool {
	return m.TargetName == "" && m.Access == AccessUnchanged && m.Doc == ""
}

// HasName reports whether a target name is set.
func (m Mapping) HasName() bool {
	return m.TargetName != ""
}

func (m Mapping) WithName(name string) Mapping {
	m.TargetName = strings.TrimSpace(name)
	return m
}

func (m Mapping) WithAccess(access AccessModifier) Mapping {
	m.Access = access
	return m
}

func (m Mapping) WithDoc(doc string) Mapping {
	m.Doc = doc
	return m
}

// Merge fills the empty fields of left with the values of right.
func Merge(left, right Mapping) Mapping {
	if left.TargetName == "" {
		left.TargetName = right.TargetName
	}
	if left.Access == AccessUnchanged {
		left.Access = right.Access
	}
	if left.Doc == "" {
		left.Doc = right.Doc
	}
	return left
}
