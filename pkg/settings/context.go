package settings

import (
	"context"
)

type runKey struct{}

// IntoContext returns a copy of ctx carrying r.
func IntoContext(ctx context.Context, r *Run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the run settings stored in ctx.
func FromContext(ctx context.Context) (*Run, bool) {
	if ctx == nil {
		return nil, false
	}
	r, ok := ctx.Value(runKey{}).(*Run)
	return r, ok && r != nil
}

// ForContext returns the run settings stored in ctx, or the CLI defaults
// when none are stored.
func ForContext(ctx context.Context) *Run {
	if r, ok := FromContext(ctx); ok {
		return r
	}
	return NewCliParams()
}
