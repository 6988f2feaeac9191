package server

import (
	"fmt"

	"git.appkode.ru/pub/go/failure"
	"github.com/samber/lo"

	"diagnosis_api/internal/domain"
	"diagnosis_api/internal/domain/entity"
	"diagnosis_api/pkg/rest"
)

const modelErrorMessage = "model failed to produce a prediction"

func newRESTStatus(descriptor entity.Descriptor) rest.Status {
	return rest.Status{
		Status:           descriptor.Status,
		Message:          descriptor.Message,
		FeaturesExpected: fmt.Sprintf("%d valores numéricos", descriptor.FeaturesExpected),
	}
}

func newRESTPrediction(prediction entity.Prediction) rest.PredictResponse {
	return rest.PredictResponse{
		Prediction: prediction.Label.Int(),
	}
}

func newDomainFeatures(request rest.PredictRequest) entity.FeatureVector {
	return entity.FeatureVector(lo.FromSlicePtr(request.Features))
}

// newInvalidArgument keeps the domain code and message for errors the caller
// can fix.
func newInvalidArgument(err error, appErr *domain.AppError) error {
	return failure.NewInvalidArgumentError(
		err.Error(),
		failure.WithCode(appErr.Code),
		failure.WithDescription(appErr.Message),
	)
}
