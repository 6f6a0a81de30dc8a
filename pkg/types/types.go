// Package types holds the wire-level types shared between the generator
// engine, the fixture store, and the CLI.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateDocument is the on-disk form of a template: a JSON document with a
// schema plus optional content modulators. The schema decides record shape;
// constraints, enums and data only influence field values.
type TemplateDocument struct {
	Name        string                      `json:"name,omitempty"`
	Schema      json.RawMessage             `json:"schema"`
	Constraints map[string]FieldConstraints `json:"constraints,omitempty"`
	Enums       map[string][]string         `json:"enums,omitempty"`
	Data        map[string][]string         `json:"data,omitempty"`
}

// FieldConstraints bounds the values generated for a single field. All
// members are optional; absent bounds fall back to per-type defaults.
type FieldConstraints struct {
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Decimal   *int     `json:"decimal,omitempty"`
	MinAge    *int     `json:"minAge,omitempty"`
	MaxAge    *int     `json:"maxAge,omitempty"`
}

// GenerateOptions configures a single batch-generation call.
type GenerateOptions struct {
	// Count is the number of records to produce (default 1).
	Count int
	// Seed pins the pseudo-random sequence. Nil means derive one from
	// system entropy; the derived seed is reported back in the result.
	Seed *int64
	// Variations enables post-hoc mutation of pooled string values
	// (digit or suffix appends). Nil means enabled.
	Variations *bool
	// Unique rejects duplicate records within the batch, best effort.
	Unique bool
}

// VariationsEnabled resolves the Variations tri-state to its default.
func (o GenerateOptions) VariationsEnabled() bool {
	return o.Variations == nil || *o.Variations
}

// Field is one named value inside a Record.
type Field struct {
	Name  string
	Value interface{}
}

// Record is a generated value object whose fields keep the declaration order
// of the template schema they were produced from. Field order is part of the
// serialization contract, so Record implements its own JSON round trip
// instead of using a map.
type Record struct {
	Fields []Field
}

// Set appends a field, preserving insertion order.
func (r *Record) Set(name string, value interface{}) {
	r.Fields = append(r.Fields, Field{Name: name, Value: value})
}

// Get returns the value for name, with ok reporting whether it exists.
func (r *Record) Get(name string) (interface{}, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in declaration order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Name
	}
	return keys
}

// CanonicalKey returns a deterministic serialization of the record, used for
// deep value-equality checks (batch uniqueness).
func (r Record) CanonicalKey() string {
	data, err := json.Marshal(r)
	if err != nil {
		// Records only ever hold JSON-representable values.
		return fmt.Sprintf("!unmarshalable:%v", err)
	}
	return string(data)
}

// MarshalJSON writes the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object back into an ordered record. Nested
// objects become nested Records, arrays become []interface{}.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record must be a JSON object, got %v", tok)
	}
	rec, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// decodeObject consumes the members of an object whose opening brace has
// already been read.
func decodeObject(dec *json.Decoder) (Record, error) {
	var rec Record
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return rec, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return rec, fmt.Errorf("expected object key, got %v", keyTok)
		}
		value, err := decodeValue(dec)
		if err != nil {
			return rec, fmt.Errorf("field %q: %w", key, err)
		}
		rec.Set(key, value)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return rec, err
	}
	return rec, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			var items []interface{}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			if items == nil {
				items = []interface{}{}
			}
			return items, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		// string, float64, bool or nil.
		return tok, nil
	}
}
