package model

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"diagnosis_api/internal/domain"
)

const defaultThreshold = 0.5

type logisticArtifact struct {
	NumFeatures int       `json:"n_features" yaml:"n_features"`
	Coef        []float64 `json:"coef" yaml:"coef"`
	Intercept   float64   `json:"intercept" yaml:"intercept"`
	Threshold   *float64  `json:"threshold" yaml:"threshold"`
	Classes     []int     `json:"classes" yaml:"classes"`
	Scaler      *struct {
		Mean  []float64 `json:"mean" yaml:"mean"`
		Scale []float64 `json:"scale" yaml:"scale"`
	} `json:"scaler" yaml:"scaler"`
}

// LogisticRegression is a standardized linear model: the positive class is
// predicted when sigmoid(coef·((x-mean)/scale) + intercept) exceeds the
// threshold.
type LogisticRegression struct {
	info      Info
	coef      *mat.VecDense
	intercept float64
	threshold float64
	classes   [2]int
	mean      *mat.VecDense
	scale     *mat.VecDense
}

func decodeLogisticRegression(h header, data []byte, unmarshal unmarshalFunc) (Predictor, error) {
	var a logisticArtifact

	if err := unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	m := &LogisticRegression{
		info: Info{
			Type:        h.Type,
			Name:        h.Name,
			Version:     h.Version,
			NumFeatures: a.NumFeatures,
		},
		coef:      mat.NewVecDense(a.NumFeatures, slices.Clone(a.Coef)),
		intercept: a.Intercept,
		threshold: defaultThreshold,
		classes:   [2]int{0, 1},
	}

	if a.Threshold != nil {
		m.threshold = *a.Threshold
	}

	if len(a.Classes) == 2 { //nolint:mnd // binary
		m.classes = [2]int{a.Classes[0], a.Classes[1]}
	}

	if a.Scaler != nil {
		m.mean = mat.NewVecDense(a.NumFeatures, slices.Clone(a.Scaler.Mean))
		m.scale = mat.NewVecDense(a.NumFeatures, slices.Clone(a.Scaler.Scale))
	}

	return m, nil
}

func (a logisticArtifact) validate() error {
	if a.NumFeatures <= 0 {
		return fmt.Errorf("n_features must be positive, got %d", a.NumFeatures)
	}

	if len(a.Coef) != a.NumFeatures {
		return fmt.Errorf("coef has %d values for %d features", len(a.Coef), a.NumFeatures)
	}

	if !allFinite(a.Coef) || !allFinite([]float64{a.Intercept}) {
		return errors.New("coefficients must be finite")
	}

	if a.Threshold != nil && (*a.Threshold <= 0 || *a.Threshold >= 1) {
		return fmt.Errorf("threshold must be in (0, 1), got %v", *a.Threshold)
	}

	if err := validateClasses(a.Classes); err != nil {
		return err
	}

	if a.Scaler == nil {
		return nil
	}

	if len(a.Scaler.Mean) != a.NumFeatures || len(a.Scaler.Scale) != a.NumFeatures {
		return fmt.Errorf(
			"scaler has %d means and %d scales for %d features",
			len(a.Scaler.Mean), len(a.Scaler.Scale), a.NumFeatures,
		)
	}

	if !allFinite(a.Scaler.Mean) || !allFinite(a.Scaler.Scale) {
		return errors.New("scaler values must be finite")
	}

	if lo.Contains(a.Scaler.Scale, 0) {
		return errors.New("scaler scale must not contain zeros")
	}

	return nil
}

// Predict implements Predictor.
func (m *LogisticRegression) Predict(features []float64) (int, error) {
	p, err := m.Probability(features)
	if err != nil {
		return 0, err
	}

	if p > m.threshold {
		return m.classes[1], nil
	}

	return m.classes[0], nil
}

// Probability returns the estimated probability of the second class.
func (m *LogisticRegression) Probability(features []float64) (float64, error) {
	if len(features) != m.info.NumFeatures {
		return 0, fmt.Errorf(
			"%w: X has %d features, but the model is expecting %d features as input",
			ErrFeatureCount, len(features), m.info.NumFeatures,
		)
	}

	x := mat.NewVecDense(len(features), slices.Clone(features))

	if m.mean != nil {
		x.SubVec(x, m.mean)
		x.DivElemVec(x, m.scale)
	}

	if !allFinite(x.RawVector().Data) {
		return 0, fmt.Errorf("%w: standardized features overflow", domain.ErrFeatureRange)
	}

	// Mixed-sign terms that overflow add up to NaN. An infinite z is fine,
	// the sigmoid saturates to 0 or 1.
	z := mat.Dot(m.coef, x) + m.intercept
	if math.IsNaN(z) {
		return 0, fmt.Errorf("%w: decision function is NaN", domain.ErrFeatureRange)
	}

	return 1 / (1 + math.Exp(-z)), nil
}

func (m *LogisticRegression) NumFeatures() int {
	return m.info.NumFeatures
}

func (m *LogisticRegression) Info() Info {
	return m.info
}

func validateClasses(classes []int) error {
	if len(classes) == 0 {
		return nil
	}

	if len(classes) != 2 || len(lo.Uniq(classes)) != 2 { //nolint:mnd // binary
		return fmt.Errorf("classes must be two distinct labels, got %v", classes)
	}

	if !lo.Every([]int{0, 1}, classes) {
		return fmt.Errorf("classes must be 0 and 1, got %v", classes)
	}

	return nil
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
