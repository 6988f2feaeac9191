// Package application wires the model, the prediction service and the
// servers together.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"diagnosis_api/internal/config"
	"diagnosis_api/internal/domain/service/prediction"
	"diagnosis_api/internal/infrastructure/model"
	"diagnosis_api/internal/server"
	"diagnosis_api/pkg/application/modules"
	"diagnosis_api/pkg/contextx"
	"diagnosis_api/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run blocks until ctx is done or one of the servers fails. A model that
// cannot be loaded stops startup before any port is opened.
func Run(ctx context.Context, cfg config.Config) error {
	predictor, err := model.Load(cfg.Model.Path, cfg.Model.ExpectedFeatures)
	if err != nil {
		return fmt.Errorf("model.Load: %w", err)
	}

	info := predictor.Info()

	logger(ctx).Info(
		"model loaded",
		slog.String(logx.FieldModelPath, cfg.Model.Path),
		slog.String(logx.FieldModelType, info.Type),
		slog.String(logx.FieldModelName, info.Name),
		slog.String(logx.FieldModelVersion, info.Version),
		slog.Int(logx.FieldFeatureCount, info.NumFeatures),
	)

	predictionService := prediction.NewService(predictor).
		WithCache(cfg.Model.CacheTTL, cfg.Model.CacheSize)

	handler := server.NewServer(
		server.NewPredictionServer(predictionService),
	).Handler(server.HandlerOptions{
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		LogFieldMaxLen: cfg.HTTP.LogFieldMaxLen,
		Masker:         newMasker(cfg.HTTP.MaskLogBodies),
	})

	g, ctx := errgroup.WithContext(ctx)

	modules.HTTPServer{
		ListenAddress:     cfg.HTTP.ListenAddress,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, handler)

	modules.ProbeServer{
		Name:    cfg.App.Name,
		Version: cfg.App.Version,
		Details: map[string]string{
			"model":   info.Name,
			"version": info.Version,
		},
		ListenAddress: cfg.Probe.ListenAddress,
		Ready:         predictionService.Ready,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
		ModelName:     info.Name,
		ModelVersion:  info.Version,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

// newMasker keeps feature vectors out of the logs unless masking is
// switched off for local debugging. Credentials are masked either way.
func newMasker(maskFeatures bool) logx.SensitiveDataMaskerInterface {
	if maskFeatures {
		return logx.NewSensitiveDataMasker()
	}

	return logx.NewCredentialsMasker()
}
