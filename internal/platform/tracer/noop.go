package tracer

import "context"

// NoopTracer produces spans that record nothing. Used in tests and when
// tracing is disabled.
type NoopTracer struct{}

// NewNoop returns a tracer with zero overhead.
func NewNoop() NoopTracer {
	return NoopTracer{}
}

// Start returns the context unchanged and a span that does nothing.
func (NoopTracer) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error)                  {}
func (noopSpan) SetAttributes(...Attribute) {}

// Verify interfaces are satisfied.
var (
	_ Tracer = NoopTracer{}
	_ Span   = noopSpan{}
)
