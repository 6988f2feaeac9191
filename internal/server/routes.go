package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"diagnosis_api/internal/domain"
	"diagnosis_api/pkg/contextx"
	"diagnosis_api/pkg/errcodes"
	"diagnosis_api/pkg/httpx/reply"
	"diagnosis_api/pkg/logx"
	"diagnosis_api/pkg/middlewarex"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type HandlerOptions struct {
	MaxBodyBytes   int64
	LogFieldMaxLen int
	Masker         logx.SensitiveDataMaskerInterface
}

// Handler builds the API router with the full middleware chain.
func (s Server) Handler(opts HandlerOptions) http.Handler {
	if opts.Masker == nil {
		opts.Masker = logx.NewSensitiveDataMasker()
	}

	bodyLogging := middlewarex.BodyLogging{
		Masker: opts.Masker,
		MaxLen: opts.LogFieldMaxLen,
	}

	r := chi.NewRouter()

	r.Use(
		middleware.RequestSize(opts.MaxBodyBytes),
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Metrics,
		bodyLogging.Request,
		bodyLogging.Response,
		middlewarex.Recovery,
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		reply.Status(r.Context(), w, http.StatusNotFound, errcodes.NotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		reply.Status(r.Context(), w, http.StatusMethodNotAllowed, errcodes.MethodNotAllowed)
	})

	s.RegisterRoutes(r)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Get("/", handler(s.getRoot))
	r.Post("/predict", handler(s.postPredict))
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			replyError(r.Context(), w, err)
		}
	}
}

// replyError maps domain kinds to statuses: input and shape problems are the
// caller's (400), model failures are ours (500).
func replyError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr, ok := domain.AsAppError(err)
	if !ok {
		reply.Error(ctx, w, err)
		return
	}

	switch appErr.Kind {
	case domain.KindInvalidInput, domain.KindShapeMismatch:
		reply.Error(ctx, w, newInvalidArgument(err, appErr))
	default:
		reply.InternalError(ctx, w, err, appErr.Code, modelErrorMessage)
	}
}
