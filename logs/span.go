package logs

import (
	"context"
	"fmt"
)

type Span string

type spanKey struct{}

var SpanKey spanKey

func SpanOf(ctx context.Context) Span {
	span, _ := ctx.Value(SpanKey).(Span)
	return span
}

// SpanError tags an error with the span it happened in.
type SpanError struct {
	Span Span
	Err  error
}

func (s *SpanError) Error() string {
	return fmt.Sprintf("%v (span: %s)", s.Err, s.Span)
}

func (s *SpanError) Unwrap() error {
	return s.Err
}

// WrapSpan tags err with the span in ctx. Errors outside a span are returned unchanged.
func WrapSpan(ctx context.Context, err error) error {
	span := SpanOf(ctx)
	if span == "" || err == nil {
		return err
	}
	return &SpanError{
		Span: span,
		Err:  err,
	}
}
