package httpx_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"diagnosis_api/pkg/contextx"
	"diagnosis_api/pkg/httpx"
	"diagnosis_api/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func TestLoggingRoundTripper(t *testing.T) {
	const (
		testRequestBody  = `{"features":[17.99,10.38]}`
		testResponseBody = `{"prediction":0}`
	)

	testLogFieldMaxLen10 := 10

	testCases := []struct {
		name                string
		handlerFunc         http.HandlerFunc
		statusCode          int
		responseBody        string
		traceID             string
		sensitiveDataMasker *httpx.SensitiveDataMaskerMock
		logFieldMaxLen      int
		check               func(rq *require.Assertions, req, resp string)
	}{
		{
			name: "Status 200 (features masked by default)",
			handlerFunc: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(testResponseBody))
			}),
			check: func(rq *require.Assertions, req, resp string) {
				rq.Contains(req, "POST / HTTP/1.1")
				rq.Contains(req, `{"features":[[MASKED]]}`)
				rq.NotContains(req, "17.99")
				rq.Contains(resp, "HTTP/1.1 200 OK")
				rq.Contains(resp, testResponseBody)
			},
			statusCode:   http.StatusOK,
			responseBody: testResponseBody,
		},
		{
			name: "Status 400",
			handlerFunc: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"'features' is required"}`))
			}),
			check: func(rq *require.Assertions, _, resp string) {
				rq.Contains(resp, "HTTP/1.1 400 Bad Request")
				rq.Contains(resp, "'features' is required")
			},
			statusCode:   http.StatusBadRequest,
			responseBody: `{"error":"'features' is required"}`,
		},
		{
			name: "Status 200 (custom masker)",
			handlerFunc: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(testResponseBody))
			}),
			check: func(rq *require.Assertions, req, resp string) {
				rq.Contains(req, `{"features":[17.99,10.38]}`)
				rq.Contains(resp, `{"prediction":<...>}`)
			},
			statusCode:   http.StatusOK,
			responseBody: testResponseBody,
			sensitiveDataMasker: &httpx.SensitiveDataMaskerMock{
				MaskFunc: func(input []byte) []byte {
					return regexp.MustCompile(`("prediction":)\d`).ReplaceAll(input, []byte("${1}<...>"))
				},
			},
		},
		{
			name: "Status 200 (with log field size limit)",
			handlerFunc: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(testResponseBody))
			}),
			check: func(rq *require.Assertions, req, resp string) {
				rq.Equal("POST / HTT", req)
				rq.Equal("HTTP/1.1 2", resp)
			},
			statusCode:     http.StatusOK,
			responseBody:   testResponseBody,
			logFieldMaxLen: testLogFieldMaxLen10,
		},
		{
			name: "Caller trace id is kept",
			handlerFunc: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(r.Header.Get(httpx.HeaderTraceID)))
			}),
			statusCode:   http.StatusOK,
			traceID:      "caller-trace-id-0001",
			responseBody: "caller-trace-id-0001",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			httpServer := httptest.NewServer(tc.handlerFunc)
			defer httpServer.Close()

			var buf bytes.Buffer

			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := contextx.WithLogger(context.Background(), logger)

			var opts []httpx.Option

			if tc.sensitiveDataMasker != nil {
				opts = append(opts, httpx.WithSensitiveDataMasker(tc.sensitiveDataMasker))
			}

			if tc.logFieldMaxLen != 0 {
				opts = append(opts, httpx.WithLogFieldMaxLen(tc.logFieldMaxLen))
			}

			client := &http.Client{
				Transport: httpx.NewLoggingRoundTripper(
					http.DefaultTransport,
					opts...,
				),
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, httpServer.URL, strings.NewReader(testRequestBody))
			rq.NoError(err)

			if tc.traceID != "" {
				req.Header.Set(httpx.HeaderTraceID, tc.traceID)
			}

			resp, err := client.Do(req)
			rq.NoError(err)

			defer resp.Body.Close()

			logLines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))

			rq.Equal(tc.statusCode, resp.StatusCode)
			rq.Len(logLines, 2)

			var request, response map[string]any

			rq.NoError(json.Unmarshal(logLines[0], &request))
			rq.NoError(json.Unmarshal(logLines[1], &response))

			if tc.check != nil {
				tc.check(
					rq,
					request[logx.FieldRequestBody].(string),
					response[logx.FieldResponseBody].(string),
				)
			}

			_, ok := response[logx.FieldDurationMs].(float64)
			rq.True(ok)
			rq.Equal(request[logx.FieldRequestID], response[logx.FieldRequestID])

			if tc.traceID != "" {
				rq.Equal(tc.traceID, request[logx.FieldRequestID])
			} else {
				const xidLen = 20

				rq.Len(request[logx.FieldRequestID], xidLen)
			}

			bodyBytes, err := io.ReadAll(resp.Body)
			rq.NoError(err)

			rq.Equal(tc.responseBody, string(bodyBytes))
		})
	}
}

func TestLoggingRoundTripperLogLevel(t *testing.T) {
	testCases := []struct {
		name  string
		opts  []httpx.Option
		lines int
	}{
		{name: "Debug by default", opts: nil, lines: 0},
		{name: "Raised to info", opts: []httpx.Option{httpx.WithLogLevel(slog.LevelInfo)}, lines: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer httpServer.Close()

			var buf bytes.Buffer

			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			ctx := contextx.WithLogger(context.Background(), logger)

			client := &http.Client{Transport: httpx.NewLoggingRoundTripper(http.DefaultTransport, tc.opts...)}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, httpServer.URL, http.NoBody)
			rq.NoError(err)

			resp, err := client.Do(req)
			rq.NoError(err)
			resp.Body.Close()

			rq.Equal(tc.lines, bytes.Count(buf.Bytes(), []byte("\n")))
		})
	}
}
