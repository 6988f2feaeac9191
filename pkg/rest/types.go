// Wire types of the public API. Keep in sync with api/openapi.yaml.
package rest

// PredictRequest Feature vector of one sample
type PredictRequest struct {
	// Features Ordered measurements, as many as the model was trained on.
	// Elements are pointers so that a null element is rejected instead of
	// decoding as zero.
	Features []*float64 `json:"features" validate:"required,dive,required"`
}

// PredictResponse Predicted class
type PredictResponse struct {
	// Prediction Class label, 0 or 1
	Prediction int `json:"prediction"`
}

// Status Service descriptor returned by the root endpoint
type Status struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	FeaturesExpected string `json:"features_expected"`
}

// Error Error model
type Error struct {
	// Error Human readable reason
	Error string `json:"error"`

	// Code Error code
	Code ErrorCode `json:"code"`

	// SupportID Trace id of the failed request
	SupportID string `json:"supportId"`
}

// ErrorCode Error code
type ErrorCode string
