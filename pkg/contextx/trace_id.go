package contextx

import (
	"context"
	"fmt"

	"github.com/rs/xid"
)

// maxTraceIDLen bounds caller-supplied ids echoed into logs and replies.
const maxTraceIDLen = 64

// TraceID identifies one inbound request across logs and error replies.
type TraceID string

type contextKeyTraceID struct{}

func (t TraceID) String() string {
	return string(t)
}

// NewTraceID returns a fresh xid-based trace id.
func NewTraceID() TraceID {
	return TraceID(xid.New().String())
}

// ParseTraceID keeps a caller-supplied id when it is short and made of
// letters, digits, '-', '_' or '.', and generates a new one otherwise.
func ParseTraceID(raw string) TraceID {
	if raw == "" || len(raw) > maxTraceIDLen {
		return NewTraceID()
	}

	for i := 0; i < len(raw); i++ {
		if !isTraceIDByte(raw[i]) {
			return NewTraceID()
		}
	}

	return TraceID(raw)
}

func isTraceIDByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == '.':
		return true
	}

	return false
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok || traceID == "" {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}
