package middlewarex_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"diagnosis_api/pkg/contextx"
	"diagnosis_api/pkg/httpx"
	"diagnosis_api/pkg/logx"
	"diagnosis_api/pkg/middlewarex"
)

func TestTraceID(t *testing.T) {
	rq := require.New(t)

	var seen contextx.TraceID

	h := middlewarex.TraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		var err error

		seen, err = contextx.TraceIDFromContext(r.Context())
		rq.NoError(err)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	const xidLen = 20

	rq.Len(seen.String(), xidLen)
	rq.Equal(seen.String(), w.Header().Get(httpx.HeaderTraceID))

	r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	r.Header.Set(httpx.HeaderTraceID, "from-caller")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)

	rq.Equal("from-caller", seen.String())
	rq.Equal("from-caller", w.Header().Get(httpx.HeaderTraceID))

	r = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	r.Header.Set(httpx.HeaderTraceID, "forged\"} level=ERROR")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)

	rq.Len(seen.String(), xidLen)
	rq.Equal(seen.String(), w.Header().Get(httpx.HeaderTraceID))
}

func TestRecovery(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	ctx := contextx.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	ctx = contextx.WithTraceID(ctx, "trace-1")

	h := middlewarex.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("predictor index out of range")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/predict", http.NoBody).WithContext(ctx))

	rq.Equal(http.StatusInternalServerError, w.Code)
	rq.JSONEq(`{"error":"Internal Server Error","code":"InternalServerError","supportId":"trace-1"}`, w.Body.String())
	rq.Contains(buf.String(), "panic in handler")
	rq.Contains(buf.String(), "predictor index out of range")
}

func TestBodyLogging(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	logging := middlewarex.BodyLogging{Masker: logx.NewSensitiveDataMasker(), MaxLen: 4096}

	h := logging.Request(logging.Response(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prediction":1}`))
	})))

	ctx := contextx.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	r := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(`{"features":[17.99,10.38]}`))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r.WithContext(ctx))

	logs := buf.String()

	rq.Equal(http.StatusOK, w.Code)
	rq.Contains(logs, `"`+logx.FieldHTTPRequest+`"`)
	rq.Contains(logs, `[MASKED]`)
	rq.NotContains(logs, "17.99")
	rq.Contains(logs, `"`+logx.FieldResponseStatus+`":200`)
	rq.Contains(logs, `{\"prediction\":1}`)
}

func TestLogger(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	slogger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(middlewarex.TraceID, middlewarex.Logger, middlewarex.Metrics)
	r.Get("/", func(_ http.ResponseWriter, r *http.Request) {
		contextx.LoggerFromContextOrDefault(r.Context()).Info("handled")
	})

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.Header.Set(httpx.HeaderTraceID, "trace-42")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req.WithContext(contextx.WithLogger(req.Context(), slogger)))

	rq.Equal(http.StatusOK, w.Code)
	rq.Contains(buf.String(), `"msg":"handled"`)
	rq.Contains(buf.String(), `"`+logx.FieldTraceID+`":"trace-42"`)
	rq.Contains(buf.String(), `"`+logx.FieldHTTPMethod+`":"GET"`)
}
