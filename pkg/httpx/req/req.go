package req

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"diagnosis_api/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

var validate = newValidator() //nolint:gochecknoglobals // skip

const invalidBodyDescription = "invalid request body: expected a single JSON object with fields of the documented types"

var errTrailingData = errors.New("unexpected data after the JSON value")

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match what the caller sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Read decodes a JSON body into dest and validates it. Every failure is an
// invalid argument error whose description is safe to show to the caller;
// neither the description nor the error text quotes the body.
func Read(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(dest); err != nil {
		return decodeError(err)
	}

	if err := trailingData(io.MultiReader(decoder.Buffered(), r.Body)); err != nil {
		return decodeError(err)
	}

	if err := validate.StructCtx(r.Context(), dest); err != nil {
		return failure.NewInvalidArgumentError(
			"validation error",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription(describe(err)),
		)
	}

	return nil
}

func decodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return failure.NewInvalidArgumentError(
			"json.Decode: "+maxBytesErr.Error(),
			failure.WithCode(errcodes.RequestTooLarge),
			failure.WithDescription(fmt.Sprintf("request body exceeds %d bytes", maxBytesErr.Limit)),
		)
	}

	return failure.NewInvalidArgumentError(
		"json.Decode: "+withoutContext(err),
		failure.WithCode(errcodes.ValidationError),
		failure.WithDescription(invalidBodyDescription),
	)
}

// withoutContext drops the excerpt of the input that jsoniter appends to
// syntax errors.
func withoutContext(err error) string {
	msg, _, _ := strings.Cut(err.Error(), ", error found in")

	return msg
}

// trailingData fails unless only whitespace follows the decoded value.
func trailingData(rest io.Reader) error {
	buf := make([]byte, 512) //nolint:mnd // read chunk

	for {
		n, err := rest.Read(buf)
		if len(bytes.TrimSpace(buf[:n])) > 0 {
			return errTrailingData
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

func describe(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrs))

	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("'%s' is required", fe.Field()))
		default:
			messages = append(messages, fmt.Sprintf("'%s' failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
	}

	return strings.Join(messages, "; ")
}
