package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/jnst/self-enrollment/internal/logger"
	"github.com/jnst/self-enrollment/internal/model"
	"github.com/jnst/self-enrollment/internal/service"
	"github.com/jnst/self-enrollment/internal/session"
)

// CohortOverview handles GET /cohorts/{slug}.
func CohortOverview(log *slog.Logger, cohorts service.CohortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		overview, err := cohorts.Overview(r.Context(), slug)
		if errors.Is(err, model.ErrCohortNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, failure("Cohort not found"))
			return
		}
		if err != nil {
			log.Error("cohort overview failed",
				logger.Module("api.cohorts"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("cohort", slug),
				logger.Err(err),
			)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, failure("Request failed"))
			return
		}

		render.JSON(w, r, ok(overview))
	}
}

// UserCourses handles GET /me/courses.
func UserCourses(log *slog.Logger, cohorts service.CohortService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := session.UserFromContext(r.Context())
		if userID == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, failure("Sign in required"))
			return
		}

		courses, err := cohorts.UserCourses(r.Context(), *userID)
		if err != nil {
			log.Error("user courses failed",
				logger.Module("api.cohorts"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				logger.Err(err),
			)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, failure("Request failed"))
			return
		}

		render.JSON(w, r, ok(courses))
	}
}
