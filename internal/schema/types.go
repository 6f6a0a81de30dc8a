// Package schema defines the template model: the declarative JSON documents
// that describe record shape, and the typed descriptors they decode into.
package schema

import (
	"github.com/seedforge/seedforge/pkg/types"
)

// Kind discriminates the variants of a type descriptor.
type Kind int

const (
	// KindScalar is a recognized primitive type tag.
	KindScalar Kind = iota
	// KindObject is a nested schema.
	KindObject
	// KindArray is a single-element sequence marker, "array of element".
	KindArray
	// KindUnknown is an unrecognized type tag. By policy it generates like
	// an enum field when an enum list exists, otherwise like a string.
	// Templates stay forgiving of typos; the fallback is just a named,
	// testable case instead of a silent default branch.
	KindUnknown
)

// Recognized scalar type tags.
const (
	TagString   = "string"
	TagNumber   = "number"
	TagBoolean  = "boolean"
	TagEmail    = "email"
	TagPhone    = "phone"
	TagDate     = "date"
	TagDatetime = "datetime"
	TagURL      = "url"
	TagText     = "text"
	TagEnum     = "enum"
	TagUUID     = "uuid"
)

var scalarTags = map[string]bool{
	TagString:   true,
	TagNumber:   true,
	TagBoolean:  true,
	TagEmail:    true,
	TagPhone:    true,
	TagDate:     true,
	TagDatetime: true,
	TagURL:      true,
	TagText:     true,
	TagEnum:     true,
	TagUUID:     true,
}

// Descriptor is the decoded form of one schema entry. Exactly one variant is
// populated, selected by Kind: Tag for scalars and unknowns, Fields for
// objects, Elem for arrays.
type Descriptor struct {
	Kind   Kind
	Tag    string
	Fields []Field
	Elem   *Descriptor
}

// Field pairs a field name with its descriptor. Order within a Fields slice
// is the declaration order of the source document and drives both generation
// order and serialized output order.
type Field struct {
	Name string
	Desc Descriptor
}

// Template is a fully decoded, immutable template. Constraints, enums and
// data pools are keyed by local field name: nested object fields look up
// their own name, not a dotted path.
type Template struct {
	Name        string
	Root        []Field
	Constraints map[string]types.FieldConstraints
	Enums       map[string][]string
	Data        map[string][]string
}

// ConstraintsFor returns the constraints for a field, zero-valued if none.
func (t *Template) ConstraintsFor(name string) types.FieldConstraints {
	if t.Constraints == nil {
		return types.FieldConstraints{}
	}
	return t.Constraints[name]
}

// EnumFor returns the enum list for a field, nil if none.
func (t *Template) EnumFor(name string) []string {
	if t.Enums == nil {
		return nil
	}
	return t.Enums[name]
}

// DataFor returns the literal value pool for a field, nil if none.
func (t *Template) DataFor(name string) []string {
	if t.Data == nil {
		return nil
	}
	return t.Data[name]
}

// FieldCount returns the total number of schema entries, counting nested
// object fields and array elements.
func (t *Template) FieldCount() int {
	return countFields(t.Root)
}

func countFields(fields []Field) int {
	n := 0
	for _, f := range fields {
		n++
		n += countNested(f.Desc)
	}
	return n
}

func countNested(d Descriptor) int {
	switch d.Kind {
	case KindObject:
		return countFields(d.Fields)
	case KindArray:
		if d.Elem != nil {
			return countNested(*d.Elem)
		}
	}
	return 0
}
