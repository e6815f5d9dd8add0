// Package cascade runs ordered lists of independent strategies and keeps the
// first one that produces a result. The redirect resolver and the content
// extractor are both built from it.
package cascade

import "context"

// Step is one strategy in a cascade. Run reports ok=false when the
// strategy has nothing to offer; failures are expressed the same way.
type Step[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, bool)
}

// First tries steps in order and returns the first result, the name of
// the step that produced it, and true. It stops early when ctx is done.
func First[T any](ctx context.Context, steps ...Step[T]) (T, string, bool) {
	var zero T
	for _, step := range steps {
		if ctx.Err() != nil {
			return zero, "", false
		}
		if v, ok := step.Run(ctx); ok {
			return v, step.Name, true
		}
	}
	return zero, "", false
}

// Values builds one step per input, all sharing the same function. It is
// the usual way to turn a selector list into a cascade.
func Values[In, T any](inputs []In, name func(In) string, run func(context.Context, In) (T, bool)) []Step[T] {
	steps := make([]Step[T], 0, len(inputs))
	for _, in := range inputs {
		in := in
		steps = append(steps, Step[T]{
			Name: name(in),
			Run: func(ctx context.Context) (T, bool) {
				return run(ctx, in)
			},
		})
	}
	return steps
}
