package contextx_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"diagnosis_api/pkg/contextx"
)

func TestTraceID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	traceID, err := contextx.TraceIDFromContext(ctx)
	rq.Empty(traceID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "trace id: no value in context")

	_, err = contextx.TraceIDFromContext(contextx.WithTraceID(ctx, ""))
	rq.ErrorIs(err, contextx.ErrNoValue)

	ctx = contextx.WithTraceID(ctx, contextx.TraceID("cq9e6rg2s6u0o1qg0l1g"))

	traceID, err = contextx.TraceIDFromContext(ctx)
	rq.NoError(err)
	rq.Equal("cq9e6rg2s6u0o1qg0l1g", traceID.String())
}

func TestParseTraceID(t *testing.T) {
	const xidLen = 20

	testCases := []struct {
		name string
		raw  string
		kept bool
	}{
		{name: "Empty", raw: "", kept: false},
		{name: "Plain", raw: "from-caller", kept: true},
		{name: "Dotted uuid", raw: "0f8c1a2e-9b7d.4c3a_11", kept: true},
		{name: "Too long", raw: strings.Repeat("a", 65), kept: false},
		{name: "Newline injection", raw: "abc\nlevel=ERROR", kept: false},
		{name: "Quote", raw: `abc"}`, kept: false},
		{name: "Non ASCII", raw: "трасса", kept: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			traceID := contextx.ParseTraceID(tc.raw)

			if tc.kept {
				rq.Equal(tc.raw, traceID.String())

				return
			}

			rq.NotEqual(tc.raw, traceID.String())
			rq.Len(traceID.String(), xidLen)
		})
	}
}
