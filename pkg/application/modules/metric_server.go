package modules

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"diagnosis_api/pkg/metrics"
)

// MetricServer exposes the default registry together with a model_info gauge
// labelled by the loaded model, so dashboards can tell deployments apart.
type MetricServer struct {
	ListenAddress string
	ModelName     string
	ModelVersion  string
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) {
	prometheusServer := metrics.NewPrometheusServer(
		m.ListenAddress,
		m.gatherer(),
	)

	g.Go(func() error {
		if err := prometheusServer.Run(ctx); err != nil {
			return fmt.Errorf("prometheusServer.Run: %w", err)
		}

		return nil
	})
}

func (m MetricServer) gatherer() prometheus.Gatherer {
	modelInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "model_info",
			Help: "Loaded model, always 1.",
		},
		[]string{"model", "version"},
	)
	modelInfo.WithLabelValues(m.ModelName, m.ModelVersion).Set(1)

	registry := prometheus.NewRegistry()
	registry.MustRegister(modelInfo)

	return prometheus.Gatherers{prometheus.DefaultGatherer, registry}
}
