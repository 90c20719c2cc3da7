// internal/kinetic/shape.go
//
// Structural shape detection. Model documents carry no explicit version
// marker, so the schema generation is recognised from which tables are
// present. Each historical generation gets its own predicate; DetectShape
// reduces them to a single tagged value that drives the migration state
// machine.

package kinetic

import "fmt"

// Shape tags the schema generation of a decoded model document.
type Shape int

const (
	// ShapeUnrecognized means no known generation matched.
	ShapeUnrecognized Shape = iota
	// ShapeLegacyV1 is the previous generation: fused
	// metabolite-in-compartment records and enzymes nested inside
	// reactions.
	ShapeLegacyV1
	// ShapeCurrent is the generation the domain library accepts today.
	ShapeCurrent
)

// String returns a stable human-readable tag for diagnostics.
func (s Shape) String() string {
	switch s {
	case ShapeLegacyV1:
		return "legacy-v1"
	case ShapeCurrent:
		return "current"
	default:
		return fmt.Sprintf("unrecognized(%d)", int(s))
	}
}

// IsCurrentShape reports whether the raw document uses the current schema:
// enzymes and their reaction links live in top-level tables.
func IsCurrentShape(raw map[string]any) bool {
	if _, ok := raw["enzyme_reaction"]; ok {
		return true
	}
	if _, ok := raw["metabolite_in_compartment"]; ok {
		return true
	}
	return false
}

// IsLegacyV1Shape reports whether the raw document uses the previous schema:
// a fused "metabolite-in-compartment" table, or enzyme records nested inside
// reaction tables.
func IsLegacyV1Shape(raw map[string]any) bool {
	if _, ok := raw["metabolite-in-compartment"]; ok {
		return true
	}
	for _, reac := range tableArray(raw["reaction"]) {
		if _, nested := reac["enzyme"]; nested {
			return true
		}
	}
	return false
}

// tableArray normalizes the two representations the TOML decoder uses for
// arrays of tables when decoding into any.
func tableArray(v any) []map[string]any {
	switch arr := v.(type) {
	case []map[string]any:
		return arr
	case []any:
		tables := make([]map[string]any, 0, len(arr))
		for _, elem := range arr {
			if table, ok := elem.(map[string]any); ok {
				tables = append(tables, table)
			}
		}
		return tables
	default:
		return nil
	}
}

// DetectShape classifies a raw decoded document. The current-shape predicate
// wins when both match, which cannot happen for well-formed documents but
// keeps re-running the tool on its own output harmless.
func DetectShape(raw map[string]any) Shape {
	switch {
	case IsCurrentShape(raw):
		return ShapeCurrent
	case IsLegacyV1Shape(raw):
		return ShapeLegacyV1
	default:
		return ShapeUnrecognized
	}
}
