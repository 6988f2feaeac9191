package middlewarex

import (
	"net/http"

	"diagnosis_api/pkg/contextx"
	"diagnosis_api/pkg/httpx"
)

// TraceID accepts a well-formed X-Trace-Id from the caller or generates one,
// and echoes it in the response headers.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := contextx.ParseTraceID(r.Header.Get(httpx.HeaderTraceID))

		ctx := contextx.WithTraceID(r.Context(), traceID)

		w.Header().Set(httpx.HeaderTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
