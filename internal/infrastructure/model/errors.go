package model

import "errors"

var (
	ErrInvalidArtifact = errors.New("invalid model artifact")
	ErrUnsupportedType = errors.New("unsupported model type")
	ErrFeatureCount    = errors.New("feature count mismatch")
)
