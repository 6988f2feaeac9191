package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	MethodNotAllowed    failure.ErrorCode = "MethodNotAllowed"
	RequestTooLarge     failure.ErrorCode = "RequestTooLarge"

	// Prediction.
	InvalidFeatures failure.ErrorCode = "InvalidFeatures" // empty vector or non-finite values
	ShapeMismatch   failure.ErrorCode = "ShapeMismatch"   // vector width differs from the model
	ModelError      failure.ErrorCode = "ModelError"      // predictor failed on a well-formed vector
)
