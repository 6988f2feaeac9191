package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"diagnosis_api/internal/domain/entity"
	"diagnosis_api/pkg/httpx/reply"
	"diagnosis_api/pkg/httpx/req"
	"diagnosis_api/pkg/logx"
	"diagnosis_api/pkg/rest"
)

type predictionService interface {
	Predict(context.Context, entity.FeatureVector) (entity.Prediction, error)
	Descriptor() entity.Descriptor
}

type PredictionServer struct {
	predictionService predictionService
}

func NewPredictionServer(predictionService predictionService) PredictionServer {
	return PredictionServer{
		predictionService: predictionService,
	}
}

func (s PredictionServer) getRoot(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, newRESTStatus(s.predictionService.Descriptor()))

	return nil
}

func (s PredictionServer) postPredict(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PredictRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	prediction, err := s.predictionService.Predict(ctx, newDomainFeatures(request))
	if err != nil {
		return fmt.Errorf("predictionService.Predict: %w", err)
	}

	logger(ctx).Info(
		"predicted",
		slog.Int(logx.FieldPrediction, prediction.Label.Int()),
		slog.Bool(logx.FieldCacheHit, prediction.CacheHit),
	)

	reply.JSON(ctx, w, http.StatusOK, newRESTPrediction(prediction))

	return nil
}
