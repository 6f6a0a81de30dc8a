package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seedforge/seedforge/pkg/types"
)

func decodeDoc(t *testing.T, schemaJSON string) *Template {
	t.Helper()
	tpl, err := Decode("test", &types.TemplateDocument{Schema: json.RawMessage(schemaJSON)})
	require.NoError(t, err)
	return tpl
}

func TestDecodePreservesFieldOrder(t *testing.T) {
	tpl := decodeDoc(t, `{"zeta":"string","alpha":"number","mid":"boolean"}`)

	require.Len(t, tpl.Root, 3)
	assert.Equal(t, "zeta", tpl.Root[0].Name)
	assert.Equal(t, "alpha", tpl.Root[1].Name)
	assert.Equal(t, "mid", tpl.Root[2].Name)
}

func TestDecodeScalarTags(t *testing.T) {
	tpl := decodeDoc(t, `{"a":"string","b":"number","c":"email","d":"uuid"}`)

	for _, f := range tpl.Root {
		assert.Equal(t, KindScalar, f.Desc.Kind, "field %s", f.Name)
	}
	assert.Equal(t, TagEmail, tpl.Root[2].Desc.Tag)
	assert.Equal(t, TagUUID, tpl.Root[3].Desc.Tag)
}

func TestDecodeUnknownTag(t *testing.T) {
	tpl := decodeDoc(t, `{"weird":"strnig"}`)

	require.Len(t, tpl.Root, 1)
	assert.Equal(t, KindUnknown, tpl.Root[0].Desc.Kind)
	assert.Equal(t, "strnig", tpl.Root[0].Desc.Tag)
}

func TestDecodeNestedObject(t *testing.T) {
	tpl := decodeDoc(t, `{"address":{"city":"string","zip":"string"}}`)

	require.Len(t, tpl.Root, 1)
	desc := tpl.Root[0].Desc
	require.Equal(t, KindObject, desc.Kind)
	require.Len(t, desc.Fields, 2)
	assert.Equal(t, "city", desc.Fields[0].Name)
	assert.Equal(t, "zip", desc.Fields[1].Name)
}

func TestDecodeArrayMarker(t *testing.T) {
	tpl := decodeDoc(t, `{"tags":["string"],"items":[{"qty":"number"}]}`)

	tags := tpl.Root[0].Desc
	require.Equal(t, KindArray, tags.Kind)
	require.NotNil(t, tags.Elem)
	assert.Equal(t, KindScalar, tags.Elem.Kind)
	assert.Equal(t, TagString, tags.Elem.Tag)

	items := tpl.Root[1].Desc
	require.Equal(t, KindArray, items.Kind)
	require.Equal(t, KindObject, items.Elem.Kind)
	assert.Equal(t, "qty", items.Elem.Fields[0].Name)
}

func TestDecodeEmptyArrayMarker(t *testing.T) {
	tpl := decodeDoc(t, `{"stuff":[]}`)

	desc := tpl.Root[0].Desc
	require.Equal(t, KindArray, desc.Kind)
	assert.Equal(t, KindUnknown, desc.Elem.Kind)
}

func TestDecodeNonDescriptorValue(t *testing.T) {
	// Numbers are not type descriptors; their textual form becomes an
	// unknown tag so generation still succeeds.
	tpl := decodeDoc(t, `{"n":42}`)
	assert.Equal(t, KindUnknown, tpl.Root[0].Desc.Kind)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  types.TemplateDocument
	}{
		{"missing schema", types.TemplateDocument{}},
		{"schema not an object", types.TemplateDocument{Schema: json.RawMessage(`["string"]`)}},
		{"truncated schema", types.TemplateDocument{Schema: json.RawMessage(`{"a":`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("bad", &tt.doc)
			assert.Error(t, err)
		})
	}
}

func TestFieldCount(t *testing.T) {
	tpl := decodeDoc(t, `{"a":"string","nested":{"b":"number","c":"boolean"},"arr":[{"d":"string"}]}`)
	// a, nested, b, c, arr, d
	assert.Equal(t, 6, tpl.FieldCount())
}
