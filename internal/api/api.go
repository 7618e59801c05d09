// Package api exposes the enrollment service over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/jnst/self-enrollment/internal/logger"
	"github.com/jnst/self-enrollment/internal/service"
	"github.com/jnst/self-enrollment/internal/session"
)

// Options configures the router.
type Options struct {
	Paths          Paths
	RequestTimeout time.Duration
}

// NewRouter wires the HTTP routes.
func NewRouter(
	log *slog.Logger,
	opts Options,
	verifier *session.Verifier,
	enrollment service.EnrollmentService,
	cohorts service.CohortService,
) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(log))
	if opts.RequestTimeout > 0 {
		router.Use(middleware.Timeout(opts.RequestTimeout))
	}
	router.Use(verifier.Middleware(log))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, failure("Requested resource not found"))
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	router.HandleFunc("/courses/{slug}/enroll", Enroll(log, opts.Paths, enrollment))
	router.Get("/cohorts/{slug}", CohortOverview(log, cohorts))
	router.Get("/me/courses", UserCourses(log, cohorts))

	return router
}

func requestLogger(log *slog.Logger) func(next http.Handler) http.Handler {
	log = log.With(logger.Module("api.request"))

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()
			defer func() {
				log.Info("incoming request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}
