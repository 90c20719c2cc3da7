// internal/migrate/step.go
//
// A migration step is one forward edge of the schema state machine: it
// rewrites a document from one shape into the adjacent successor shape, in
// memory, without touching the filesystem. Steps are assembled into an
// explicit ordered list rather than registered through package-level side
// effects, so the chain handed to a Runner is visible at the call site.

package migrate

import "github.com/maudtools/maudup/internal/kinetic"

// Document is an in-memory model document tagged with its detected shape.
// Exactly one of Legacy and Model is set, matching the shape.
type Document struct {
	Path   string // source file, used in diagnostics only
	Shape  kinetic.Shape
	Legacy *kinetic.LegacyModel
	Model  *kinetic.Model
}

// Step rewrites a document from shape From into shape To.
type Step struct {
	Name  string
	From  kinetic.Shape
	To    kinetic.Shape
	Apply func(Document) (Document, error)
}

// Steps returns the full ordered migration chain, oldest edge first. The
// runner walks it strictly forward; new schema generations append their edge
// here and nowhere else.
func Steps() []Step {
	return []Step{
		{
			Name:  stepV1Name,
			From:  kinetic.ShapeLegacyV1,
			To:    kinetic.ShapeCurrent,
			Apply: applyV1SplitEntityTables,
		},
	}
}
