package client_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"diagnosis_api/internal/client"
	"diagnosis_api/internal/domain/service/prediction"
	"diagnosis_api/internal/infrastructure/model"
	"diagnosis_api/internal/server"
	"diagnosis_api/pkg/contextx"
	"diagnosis_api/pkg/httpx"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	predictor, err := model.Load(filepath.Join("..", "..", "modelo.json"), 30)
	require.NoError(t, err)

	handler := server.NewServer(
		server.NewPredictionServer(prediction.NewService(predictor)),
	).Handler(server.HandlerOptions{MaxBodyBytes: 65536})

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return ts
}

func TestClient(t *testing.T) {
	rq := require.New(t)
	ts := newTestServer(t)

	c := client.New(ts.URL+"/", client.WithTimeout(time.Second), client.WithLogFieldMaxLen(128))

	status, err := c.Status(context.Background())
	rq.NoError(err)
	rq.Equal("ok", status.Status)
	rq.Equal("30 valores numéricos", status.FeaturesExpected)

	label, err := c.Predict(context.Background(), []float64{
		13.54, 14.36, 87.46, 566.3, 0.09779, 0.08129, 0.06664, 0.04781, 0.1885, 0.05766,
		0.2699, 0.7886, 2.058, 23.56, 0.008462, 0.0146, 0.02387, 0.01315, 0.0198, 0.0023,
		15.11, 19.26, 99.7, 711.2, 0.144, 0.1773, 0.239, 0.1288, 0.2977, 0.07259,
	})
	rq.NoError(err)
	rq.Equal(1, label)
}

func TestClientAPIError(t *testing.T) {
	rq := require.New(t)
	ts := newTestServer(t)

	c := client.New(ts.URL)

	_, err := c.Predict(context.Background(), []float64{1, 2, 3})

	var apiErr *client.APIError

	rq.True(errors.As(err, &apiErr))
	rq.Equal(http.StatusBadRequest, apiErr.StatusCode)
	rq.Equal("ShapeMismatch", apiErr.Code)
	rq.Equal("X has 3 features, but the model is expecting 30 features as input", apiErr.Message)
}

func TestClientAPIErrorWithoutBody(t *testing.T) {
	rq := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	_, err := client.New(ts.URL).Status(context.Background())

	var apiErr *client.APIError

	rq.ErrorAs(err, &apiErr)
	rq.Equal(http.StatusBadGateway, apiErr.StatusCode)
	rq.Equal("Bad Gateway", apiErr.Message)
	rq.Empty(apiErr.Code)
}

func TestClientSendsTraceID(t *testing.T) {
	rq := require.New(t)

	var traceID string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = r.Header.Get(httpx.HeaderTraceID)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"prediction":0}`)) //nolint:errcheck
	}))
	t.Cleanup(ts.Close)

	label, err := client.New(ts.URL).Predict(context.Background(), []float64{1})
	rq.NoError(err)
	rq.Equal(0, label)
	rq.NotEmpty(traceID)
}

func TestClientLogLevelMasksFeatures(t *testing.T) {
	rq := require.New(t)
	ts := newTestServer(t)

	var buf bytes.Buffer

	ctx := contextx.WithLogger(
		context.Background(),
		slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})),
	)

	_, err := client.New(ts.URL, client.WithLogLevel(slog.LevelInfo)).Predict(ctx, []float64{17.99, 10.38})

	var apiErr *client.APIError

	rq.ErrorAs(err, &apiErr)
	rq.Equal(http.StatusBadRequest, apiErr.StatusCode)

	rq.Contains(buf.String(), "[MASKED]")
	rq.NotContains(buf.String(), "17.99")
}
