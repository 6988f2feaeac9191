// Package model loads serialized binary classifiers and evaluates them.
//
// An artifact is a JSON or YAML document whose "type" field selects the
// predictor. Predictors are immutable once loaded and safe for concurrent
// use.
package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	TypeLogisticRegression = "logistic_regression"
	TypeDecisionTree       = "decision_tree"
)

// Predictor maps one feature vector to a class label.
type Predictor interface {
	Predict(features []float64) (int, error)
	NumFeatures() int
	Info() Info
}

// Info is the artifact metadata worth logging and publishing on probes.
type Info struct {
	Type        string
	Name        string
	Version     string
	NumFeatures int
}

type header struct {
	Type    string `json:"type" yaml:"type"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

type unmarshalFunc func(data []byte, v any) error

type deserializer func(h header, data []byte, unmarshal unmarshalFunc) (Predictor, error)

//nolint:gochecknoglobals
var deserializers = map[string]deserializer{
	TypeLogisticRegression: decodeLogisticRegression,
	TypeDecisionTree:       decodeDecisionTree,
}

// Load reads the artifact at path. When expectedFeatures is positive the
// predictor width must equal it.
func Load(path string, expectedFeatures int) (Predictor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	predictor, err := Decode(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if expectedFeatures > 0 && predictor.NumFeatures() != expectedFeatures {
		return nil, fmt.Errorf(
			"%w: model %q expects %d features, service is configured for %d",
			ErrFeatureCount, predictor.Info().Name, predictor.NumFeatures(), expectedFeatures,
		)
	}

	return predictor, nil
}

// Format selects the artifact syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode builds a predictor from an in-memory artifact.
func Decode(data []byte, format Format) (Predictor, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidArtifact)
	}

	unmarshal := unmarshalFunc(json.Unmarshal)
	if format == FormatYAML {
		unmarshal = yaml.Unmarshal
	}

	var h header

	if err := unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	decode, ok := deserializers[h.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, h.Type)
	}

	return decode(h, data, unmarshal)
}
