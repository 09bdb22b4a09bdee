package logs

import (
	"context"
	"crypto/rand"
)

// Span identifies one unit of work, such as converting a single input file.
type Span string

type spanKey struct{}

var SpanKey = spanKey{}

func SpanOf(ctx context.Context) Span {
	span, _ := ctx.Value(SpanKey).(Span)
	return span
}

type NewSpan func(ctx context.Context, name string) (context.Context, Span)

func (Module) NewSpan(
	logger Logger,
) NewSpan {
	return func(ctx context.Context, name string) (context.Context, Span) {
		parent := SpanOf(ctx)
		span := Span(rand.Text())
		ctx = context.WithValue(ctx, SpanKey, span)
		args := []any{"name", name}
		if parent != "" {
			args = append(args, "parent", string(parent))
		}
		logger.DebugContext(ctx, "new span", args...)
		return ctx, span
	}
}
