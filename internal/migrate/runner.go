// internal/migrate/runner.go
//
// The runner is the schema state machine from the design: states are shapes,
// edges are steps, and the walk is strictly forward. A document already in
// the current shape passes through untouched, which makes the whole pipeline
// idempotent.

package migrate

import "github.com/maudtools/maudup/internal/kinetic"

// Runner applies an ordered migration chain to documents.
type Runner struct {
	steps []Step
}

// NewRunner builds a runner over the given chain. Callers normally pass
// Steps(); tests inject shorter chains.
func NewRunner(steps []Step) *Runner {
	return &Runner{steps: steps}
}

// Run walks the chain from the document's detected shape until the current
// shape is reached. It never touches the filesystem. Failure modes:
// UnrecognizedShape when no edge leaves the current state, and
// StepApplicationFailure when an edge exists but its rewrite cannot complete
// or the final document does not satisfy the current schema.
func (r *Runner) Run(doc Document) (Document, error) {
	cur := doc
	for cur.Shape != kinetic.ShapeCurrent {
		step, ok := r.next(cur.Shape)
		if !ok {
			return Document{}, NewError(KindUnrecognizedShape, cur.Path, nil)
		}
		out, err := step.Apply(cur)
		if err != nil {
			return Document{}, err
		}
		if out.Shape != step.To {
			return Document{}, StepError(step.Name, cur.Path, "produced shape %s, want %s", out.Shape, step.To)
		}
		cur = out
	}
	if cur.Model == nil {
		return Document{}, NewError(KindUnrecognizedShape, cur.Path, nil)
	}
	if err := cur.Model.Validate(); err != nil {
		return Document{}, &Error{Kind: KindStepApplicationFailure, Path: cur.Path, Err: err}
	}
	return cur, nil
}

// next finds the edge leaving the given shape. Steps are tried in chain
// order; there is at most one edge per shape, so the first match wins.
func (r *Runner) next(from kinetic.Shape) (Step, bool) {
	for _, step := range r.steps {
		if step.From == from {
			return step, true
		}
	}
	return Step{}, false
}
