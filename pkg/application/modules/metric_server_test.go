package modules_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"diagnosis_api/pkg/application/modules"
)

func TestMetricServer(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	modules.MetricServer{
		ListenAddress: ":10031",
		ModelName:     "breast-cancer-logreg",
		ModelVersion:  "2024.1",
	}.Run(ctx, g)

	// Wait for server to start.
	time.Sleep(time.Second)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://:10031/metrics", http.NoBody)
	rq.NoError(err)

	resp, err := http.DefaultClient.Do(req)
	rq.NoError(err)

	body, err := io.ReadAll(resp.Body)
	rq.NoError(err)
	resp.Body.Close()

	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Contains(string(body), `model_info{model="breast-cancer-logreg",version="2024.1"} 1`)
	rq.Contains(string(body), "go_goroutines")

	cancel()

	rq.NoError(g.Wait())
}
