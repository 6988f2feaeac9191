package middlewarex

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"diagnosis_api/pkg/errcodes"
	"diagnosis_api/pkg/httpx/reply"
	"diagnosis_api/pkg/logx"
)

// Recovery converts a panic into a JSON 500 so the caller never sees a reset
// connection.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler { //nolint:errorlint,goerr113
				panic(rec)
			}

			logger(ctx).Error(
				"panic in handler",
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			reply.Status(ctx, w, http.StatusInternalServerError, errcodes.InternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
