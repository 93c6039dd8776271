package trace

import "context"

type ctxKey struct{}

// carrier is what a context holds: the tracer and the innermost span.
type carrier struct {
	tracer Tracer
	span   SpanContext
}

// SpanContext identifies the span new spans are nested under.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

func carrierOf(ctx context.Context) carrier {
	if ctx != nil {
		if c, ok := ctx.Value(ctxKey{}).(carrier); ok {
			return c
		}
	}
	return carrier{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return carrierOf(ctx).tracer
}

// WithTracer attaches t to ctx; the current span is reset since ids of
// another tracer mean nothing to t.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, carrier{tracer: t})
}

// CurrentSpan returns the innermost span of ctx; zero when there is none.
func CurrentSpan(ctx context.Context) SpanContext {
	return carrierOf(ctx).span
}

// WithSpanContext makes sc the parent of spans started from the result.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	c := carrierOf(ctx)
	c.span = sc
	return context.WithValue(ctx, ctxKey{}, c)
}
