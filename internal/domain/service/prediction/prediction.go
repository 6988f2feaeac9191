package prediction

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"diagnosis_api/internal/domain"
	"diagnosis_api/internal/domain/entity"
	"diagnosis_api/internal/domain/value"
	"diagnosis_api/pkg/contextx"
	"diagnosis_api/pkg/errcodes"
	"diagnosis_api/pkg/logx"
)

const (
	statusOK     = "ok"
	readyMessage = "API de predicción Breast Cancer lista"

	featureRangeMessage = "features are too large in magnitude for the model"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//go:generate moq -rm -out predictor_mock.gen.go . predictor:PredictorMock
type predictor interface {
	Predict(features []float64) (int, error)
	NumFeatures() int
}

type Service struct {
	predictor predictor
	cache     *expirable.LRU[string, value.ClassLabel]
}

func NewService(predictor predictor) *Service {
	return &Service{
		predictor: predictor,
	}
}

// WithCache memoizes up to size predictions for ttl, evicting the least
// recently used. The predictor is deterministic, so a cached label is always
// the label the predictor would return. A non-positive ttl or size disables
// the cache.
func (s *Service) WithCache(ttl time.Duration, size int) *Service {
	if ttl > 0 && size > 0 {
		s.cache = expirable.NewLRU[string, value.ClassLabel](size, nil, ttl)
	}

	return s
}

// Predict classifies one feature vector.
func (s *Service) Predict(ctx context.Context, features entity.FeatureVector) (entity.Prediction, error) {
	if err := s.validate(features); err != nil {
		observe(outcomeOf(err), "")
		return entity.Prediction{}, err
	}

	key := cacheKey(features)

	if label, ok := s.cached(key); ok {
		cacheHits.Inc()
		observe(outcomeOK, label.String())

		return entity.Prediction{Label: label, CacheHit: true}, nil
	}

	raw, err := s.predictor.Predict(features)
	if errors.Is(err, domain.ErrFeatureRange) {
		observe(outcomeInvalidInput, "")

		return entity.Prediction{}, domain.WrapError(err, domain.KindInvalidInput, errcodes.InvalidFeatures, featureRangeMessage)
	}

	if err != nil {
		observe(outcomeModelError, "")

		return entity.Prediction{}, domain.WrapError(err, domain.KindModel, errcodes.ModelError, "predictor.Predict")
	}

	label, err := value.ParseClassLabel(raw)
	if err != nil {
		observe(outcomeModelError, "")

		return entity.Prediction{}, domain.WrapError(err, domain.KindModel, errcodes.ModelError, "predictor returned an unexpected label")
	}

	if s.cache != nil {
		s.cache.Add(key, label)
	}

	observe(outcomeOK, label.String())

	logger(ctx).Debug(
		"prediction",
		slog.Int(logx.FieldFeatureCount, features.Len()),
		slog.Int(logx.FieldPrediction, label.Int()),
	)

	return entity.Prediction{Label: label}, nil
}

func (s *Service) validate(features entity.FeatureVector) error {
	if features.Len() == 0 {
		return domain.NewError(domain.KindInvalidInput, errcodes.InvalidFeatures, "features must not be empty")
	}

	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.NewError(
				domain.KindInvalidInput,
				errcodes.InvalidFeatures,
				fmt.Sprintf("feature %d is not a finite number", i),
			)
		}
	}

	if want := s.predictor.NumFeatures(); features.Len() != want {
		return domain.NewError(
			domain.KindShapeMismatch,
			errcodes.ShapeMismatch,
			fmt.Sprintf("X has %d features, but the model is expecting %d features as input", features.Len(), want),
		)
	}

	return nil
}

func (s *Service) cached(key string) (value.ClassLabel, bool) {
	if s.cache == nil {
		return 0, false
	}

	return s.cache.Get(key)
}

// Descriptor describes the service for the root endpoint. It does not depend
// on the model answering.
func (s *Service) Descriptor() entity.Descriptor {
	descriptor := entity.Descriptor{
		Status:  statusOK,
		Message: readyMessage,
	}

	if s.predictor != nil {
		descriptor.FeaturesExpected = s.predictor.NumFeatures()
	}

	return descriptor
}

// Ready reports whether requests can be served.
func (s *Service) Ready(context.Context) error {
	if s.predictor == nil || s.predictor.NumFeatures() <= 0 {
		return errors.New("model is not loaded")
	}

	return nil
}

// cacheKey is the raw IEEE 754 bits of the vector.
func cacheKey(features entity.FeatureVector) string {
	key := make([]byte, 0, 8*features.Len()) //nolint:mnd // bytes per float64

	for _, v := range features {
		key = binary.LittleEndian.AppendUint64(key, math.Float64bits(v))
	}

	return string(key)
}
