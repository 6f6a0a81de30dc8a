package generator

import (
	"fmt"

	"github.com/seedforge/seedforge/internal/schema"
	"github.com/seedforge/seedforge/pkg/types"
)

// Record generates one fully-populated record for the template. Fields are
// produced in schema declaration order, which also fixes the pseudo-random
// draw order, so output is deterministic per seed.
func (g *Generator) Record(t *schema.Template, variations bool) (types.Record, error) {
	return g.objectValue(t, t.Root, variations)
}

func (g *Generator) objectValue(t *schema.Template, fields []schema.Field, variations bool) (types.Record, error) {
	var rec types.Record
	for _, f := range fields {
		value, err := g.fieldValue(t, f.Name, f.Desc, variations)
		if err != nil {
			return types.Record{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		rec.Set(f.Name, value)
	}
	return rec, nil
}

// fieldValue dispatches on the descriptor variant. Constraint, enum and data
// lookups use the local field name: nested objects share the template's flat
// namespaces rather than dotted paths.
func (g *Generator) fieldValue(t *schema.Template, name string, desc schema.Descriptor, variations bool) (interface{}, error) {
	switch desc.Kind {
	case schema.KindObject:
		return g.objectValue(t, desc.Fields, variations)

	case schema.KindArray:
		length := g.rng.IntBetween(1, 5)
		items := make([]interface{}, 0, length)
		for i := 0; i < length; i++ {
			// Each element is an independent draw under the same field
			// name, so pooled values may repeat across elements.
			item, err := g.fieldValue(t, name, *desc.Elem, variations)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil

	default:
		return g.scalarValue(desc, t.ConstraintsFor(name), t.EnumFor(name), t.DataFor(name), variations)
	}
}
