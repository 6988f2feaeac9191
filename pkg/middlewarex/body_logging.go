package middlewarex

import (
	"bytes"
	"cmp"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/zenazn/goji/web/mutil"

	"diagnosis_api/pkg/logx"
)

// BodyLogging dumps inbound requests and outbound responses through a
// masker, truncating each dump to MaxLen bytes.
type BodyLogging struct {
	Masker logx.SensitiveDataMaskerInterface
	MaxLen int
}

func (b BodyLogging) Request(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		dumpBody := !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")

		dump, err := httputil.DumpRequest(r, dumpBody)

		logger(ctx).Info(
			logx.FieldHTTPRequest,
			slog.String(logx.FieldRequestBody, string(b.truncate(b.Masker.Mask(dump)))),
			logx.Error(err),
		)

		next.ServeHTTP(w, r)
	})
}

// The trouble with optional interfaces:
// https://blog.merovius.de/posts/2017-07-30-the-trouble-with-optional-interfaces/
// https://medium.com/@cep21/interface-wrapping-method-erasure-c523b3549912
func (b BodyLogging) Response(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		start := time.Now()
		lw := mutil.WrapWriter(w)

		var buf bytes.Buffer

		lw.Tee(&buf)

		next.ServeHTTP(lw, r)

		headers, err := responseHeaders(w)
		if err != nil {
			logger(ctx).Error("responseHeaders", logx.Error(err))
		}

		// lw.Status() is 0 when the handler never called WriteHeader.
		status := cmp.Or(lw.Status(), http.StatusOK)

		logger(ctx).Info(
			logx.FieldHTTPResponse,
			slog.Int(logx.FieldResponseStatus, status),
			slog.String(logx.FieldResponseHeaders, string(b.Masker.Mask(headers))),
			slog.String(logx.FieldResponseBody, string(b.truncate(b.Masker.Mask(buf.Bytes())))),
			slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
		)
	})
}

// Truncation runs after masking so a cut never splits a masked value.
func (b BodyLogging) truncate(dump []byte) []byte {
	if b.MaxLen > 0 && len(dump) > b.MaxLen {
		return dump[:b.MaxLen]
	}

	return dump
}

func responseHeaders(w http.ResponseWriter) ([]byte, error) {
	var buf bytes.Buffer

	if err := w.Header().WriteSubset(&buf, nil); err != nil {
		return nil, fmt.Errorf("header.WriteSubset: %w", err)
	}

	return buf.Bytes(), nil
}
