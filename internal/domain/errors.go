package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"
)

// ErrFeatureRange предиктор не может вычислить ответ: признаки конечны, но
// выходят за численный диапазон модели (например, переполнение при
// стандартизации).
var ErrFeatureRange = errors.New("features are outside the numeric range of the model")

// Kind классифицирует доменную ошибку по тому, кто в ней виноват.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidInput вход клиента не является вектором признаков.
	KindInvalidInput
	// KindShapeMismatch длина вектора не совпадает с шириной модели.
	KindShapeMismatch
	// KindModel модель не смогла классифицировать корректный вектор.
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindShapeMismatch:
		return "ShapeMismatch"
	case KindModel:
		return "ModelError"
	default:
		return "Unknown"
	}
}

// AppError представляет доменную ошибку приложения.
type AppError struct {
	Kind    Kind
	Code    failure.ErrorCode
	Message string
	cause   error
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap возвращает обёрнутую ошибку для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewError создаёт новую доменную ошибку.
func NewError(kind Kind, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// WrapError оборачивает существующую ошибку с доменным контекстом.
func WrapError(err error, kind Kind, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// AsAppError извлекает доменную ошибку из цепочки.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf возвращает KindUnknown для ошибок вне домена.
func KindOf(err error) Kind {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind
	}
	return KindUnknown
}
