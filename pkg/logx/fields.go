package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldCacheHit        = "cache-hit"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldErrorKind       = "error-kind"
	FieldFeatureCount    = "feature-count"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldModelName       = "model-name"
	FieldModelPath       = "model-path"
	FieldModelType       = "model-type"
	FieldModelVersion    = "model-version"
	FieldPrediction      = "prediction"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
)
