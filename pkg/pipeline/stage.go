// Package pipeline provides the stage infrastructure for handmesh.
package pipeline

import (
	"context"
)

// Stage is one step of the extraction pipeline: it consumes an input
// value and produces the next stage's input. Long-running stages check
// ctx and return early on cancellation.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc adapts a plain function to the Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute calls f.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
