package schema

import (
	"fmt"
)

// Validate runs a structural sanity pass over a decoded template and returns
// human-readable warnings. Warnings never reject a template: the generator
// is deliberately forgiving, and a nonsensical bound simply produces
// odd-looking data.
func Validate(t *Template) []string {
	var warnings []string

	names := make(map[string]bool)
	collectNames(t.Root, names)

	for field, cons := range t.Constraints {
		if !names[field] {
			warnings = append(warnings, fmt.Sprintf("constraints reference field %q not present in schema", field))
		}
		if cons.Min != nil && cons.Max != nil && *cons.Min > *cons.Max {
			warnings = append(warnings, fmt.Sprintf("field %q: min (%v) exceeds max (%v)", field, *cons.Min, *cons.Max))
		}
		if cons.MinLength != nil && cons.MaxLength != nil && *cons.MinLength > *cons.MaxLength {
			warnings = append(warnings, fmt.Sprintf("field %q: minLength (%d) exceeds maxLength (%d)", field, *cons.MinLength, *cons.MaxLength))
		}
		if cons.MinAge != nil && cons.MaxAge != nil && *cons.MinAge > *cons.MaxAge {
			warnings = append(warnings, fmt.Sprintf("field %q: minAge (%d) exceeds maxAge (%d)", field, *cons.MinAge, *cons.MaxAge))
		}
		if cons.Decimal != nil && *cons.Decimal < 0 {
			warnings = append(warnings, fmt.Sprintf("field %q: negative decimal places (%d)", field, *cons.Decimal))
		}
	}

	for field, values := range t.Enums {
		if !names[field] {
			warnings = append(warnings, fmt.Sprintf("enums reference field %q not present in schema", field))
		}
		if len(values) == 0 {
			warnings = append(warnings, fmt.Sprintf("field %q: empty enum list", field))
		}
	}

	for field, values := range t.Data {
		if !names[field] {
			warnings = append(warnings, fmt.Sprintf("data pool references field %q not present in schema", field))
		}
		if len(values) == 0 {
			warnings = append(warnings, fmt.Sprintf("field %q: empty data pool", field))
		}
	}

	return warnings
}

// collectNames gathers every local field name in the schema, including
// nested object fields, since constraint/enum/data namespaces are flat.
func collectNames(fields []Field, out map[string]bool) {
	for _, f := range fields {
		out[f.Name] = true
		collectDescNames(f.Desc, out)
	}
}

func collectDescNames(d Descriptor, out map[string]bool) {
	switch d.Kind {
	case KindObject:
		collectNames(d.Fields, out)
	case KindArray:
		if d.Elem != nil {
			collectDescNames(*d.Elem, out)
		}
	}
}
