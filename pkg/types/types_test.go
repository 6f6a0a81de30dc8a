package types

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecordMarshalOrder(t *testing.T) {
	var r Record
	r.Set("z", "last-name-first")
	r.Set("a", float64(1))
	r.Set("m", true)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	want := `{"z":"last-name-first","a":1,"m":true}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestRecordUnmarshalPreservesOrder(t *testing.T) {
	input := `{"beta":"x","alpha":{"inner":2},"gamma":[1,"two",{"deep":true}]}`

	var r Record
	if err := json.Unmarshal([]byte(input), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	keys := r.Keys()
	if !reflect.DeepEqual(keys, []string{"beta", "alpha", "gamma"}) {
		t.Errorf("unexpected key order: %v", keys)
	}

	alpha, _ := r.Get("alpha")
	nested, ok := alpha.(Record)
	if !ok {
		t.Fatalf("expected nested Record, got %T", alpha)
	}
	if inner, _ := nested.Get("inner"); inner != float64(2) {
		t.Errorf("unexpected nested value: %v", inner)
	}

	gamma, _ := r.Get("gamma")
	items, ok := gamma.([]interface{})
	if !ok || len(items) != 3 {
		t.Fatalf("expected 3-element array, got %#v", gamma)
	}
	if _, ok := items[2].(Record); !ok {
		t.Errorf("expected object array element to be a Record, got %T", items[2])
	}

	// Marshal reproduces the original byte-for-byte (modulo whitespace).
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != input {
		t.Errorf("round trip mismatch:\n in: %s\nout: %s", input, out)
	}
}

func TestRecordUnmarshalRejectsNonObject(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`[1,2]`), &r); err == nil {
		t.Error("expected error for non-object input")
	}
}

func TestCanonicalKey(t *testing.T) {
	var a, b, c Record
	a.Set("x", "1")
	a.Set("y", "2")
	b.Set("x", "1")
	b.Set("y", "2")
	c.Set("x", "1")
	c.Set("y", "3")

	if a.CanonicalKey() != b.CanonicalKey() {
		t.Error("equal records should share a canonical key")
	}
	if a.CanonicalKey() == c.CanonicalKey() {
		t.Error("different records should have different canonical keys")
	}
}

func TestVariationsEnabled(t *testing.T) {
	off := false
	on := true

	tests := []struct {
		name string
		opts GenerateOptions
		want bool
	}{
		{"default on", GenerateOptions{}, true},
		{"explicit on", GenerateOptions{Variations: &on}, true},
		{"explicit off", GenerateOptions{Variations: &off}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.VariationsEnabled(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
