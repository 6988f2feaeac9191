package reply

import (
	"context"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"diagnosis_api/pkg/contextx"
	"diagnosis_api/pkg/errcodes"
	"diagnosis_api/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	SupportID string `json:"supportId"`
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// Error writes err as an ErrorResponse. The status follows the failure
// category; anything uncategorized is a 500 and its text is not exposed.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	statusCode, defaultCode := classify(err)

	if statusCode >= http.StatusInternalServerError {
		logger(ctx).Error("error", logx.Error(err))
	} else {
		logger(ctx).Warn("error", logx.Error(err))
	}

	response := ErrorResponse{
		Error:     failure.Description(err),
		Code:      failure.Code(err).String(),
		SupportID: supportID(ctx),
	}

	if response.Code == "" {
		response.Code = defaultCode.String()
	}

	if response.Error == "" {
		response.Error = http.StatusText(statusCode)
	}

	JSON(ctx, w, statusCode, response)
}

// InternalError writes a 500 carrying code. err is logged but its text is
// not exposed to the caller.
func InternalError(ctx context.Context, w http.ResponseWriter, err error, code failure.ErrorCode, message string) {
	logger(ctx).Error("error", logx.Error(err))

	JSON(ctx, w, http.StatusInternalServerError, ErrorResponse{
		Error:     message,
		Code:      code.String(),
		SupportID: supportID(ctx),
	})
}

// Status writes a bare ErrorResponse for conditions raised by the router
// itself rather than by a handler.
func Status(ctx context.Context, w http.ResponseWriter, statusCode int, code failure.ErrorCode) {
	JSON(ctx, w, statusCode, ErrorResponse{
		Error:     http.StatusText(statusCode),
		Code:      code.String(),
		SupportID: supportID(ctx),
	})
}

func classify(err error) (int, failure.ErrorCode) {
	switch {
	case failure.IsInvalidArgumentError(err):
		return http.StatusBadRequest, errcodes.ValidationError
	case failure.IsNotFoundError(err):
		return http.StatusNotFound, errcodes.NotFound
	case failure.IsUnprocessableEntityError(err):
		return http.StatusUnprocessableEntity, errcodes.ValidationError
	default:
		return http.StatusInternalServerError, errcodes.InternalServerError
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
