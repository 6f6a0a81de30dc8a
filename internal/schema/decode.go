package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/seedforge/seedforge/pkg/types"
)

// Decode turns a template document into a Template. The schema is walked
// once here, with a token decoder so that object key order survives; record
// generation never re-inspects raw JSON.
func Decode(name string, doc *types.TemplateDocument) (*Template, error) {
	if len(doc.Schema) == 0 {
		return nil, fmt.Errorf("template %q has no schema", name)
	}

	dec := json.NewDecoder(bytes.NewReader(doc.Schema))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("template %q: failed to parse schema: %w", name, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("template %q: schema must be a JSON object", name)
	}

	root, err := decodeFields(dec)
	if err != nil {
		return nil, fmt.Errorf("template %q: failed to parse schema: %w", name, err)
	}

	return &Template{
		Name:        name,
		Root:        root,
		Constraints: doc.Constraints,
		Enums:       doc.Enums,
		Data:        doc.Data,
	}, nil
}

// decodeFields consumes the members of a schema object whose opening brace
// has already been read.
func decodeFields(dec *json.Decoder) ([]Field, error) {
	var fields []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected field name, got %v", keyTok)
		}
		desc, err := decodeDescriptor(dec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, Field{Name: key, Desc: desc})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

// decodeDescriptor reads one type descriptor: a type tag string, a nested
// schema object, or a single-element array marker.
func decodeDescriptor(dec *json.Decoder) (Descriptor, error) {
	tok, err := dec.Token()
	if err != nil {
		return Descriptor{}, err
	}

	switch t := tok.(type) {
	case string:
		if scalarTags[t] {
			return Descriptor{Kind: KindScalar, Tag: t}, nil
		}
		return Descriptor{Kind: KindUnknown, Tag: t}, nil

	case json.Delim:
		switch t {
		case '{':
			fields, err := decodeFields(dec)
			if err != nil {
				return Descriptor{}, err
			}
			return Descriptor{Kind: KindObject, Fields: fields}, nil
		case '[':
			return decodeArray(dec)
		}
		return Descriptor{}, fmt.Errorf("unexpected delimiter %v in schema", t)

	default:
		// Numbers, booleans and nulls are not type descriptors; treat the
		// textual form as an unknown tag so generation still succeeds.
		return Descriptor{Kind: KindUnknown, Tag: fmt.Sprint(tok)}, nil
	}
}

// decodeArray reads an array marker whose opening bracket has already been
// read. The first element is the element descriptor; extra elements are
// ignored and an empty marker means an array of unknowns.
func decodeArray(dec *json.Decoder) (Descriptor, error) {
	var elem *Descriptor
	for dec.More() {
		d, err := decodeDescriptor(dec)
		if err != nil {
			return Descriptor{}, err
		}
		if elem == nil {
			elem = &d
		}
	}
	if _, err := dec.Token(); err != nil {
		return Descriptor{}, err
	}
	if elem == nil {
		elem = &Descriptor{Kind: KindUnknown}
	}
	return Descriptor{Kind: KindArray, Elem: elem}, nil
}
