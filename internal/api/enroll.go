package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/jnst/self-enrollment/internal/admission"
	"github.com/jnst/self-enrollment/internal/logger"
	"github.com/jnst/self-enrollment/internal/model"
	"github.com/jnst/self-enrollment/internal/service"
	"github.com/jnst/self-enrollment/internal/session"
)

// EnrollQuery is the query string accepted by the enroll endpoint.
type EnrollQuery struct {
	Passcode *string
	ReturnTo string
}

func parseEnrollQuery(r *http.Request) *EnrollQuery {
	values := r.URL.Query()

	q := &EnrollQuery{ReturnTo: values.Get("returnTo")}
	if values.Has("passcode") {
		passcode := values.Get("passcode")
		q.Passcode = &passcode
	}

	return q
}

// courseSlug returns the decoded {slug} path segment. chi matches against
// r.URL.RawPath only when the path carried escapes, otherwise the segment is
// already decoded.
func courseSlug(r *http.Request) (string, error) {
	slug := chi.URLParam(r, "slug")
	if r.URL.RawPath == "" {
		return slug, nil
	}

	return url.PathUnescape(slug)
}

// Enroll handles /courses/{slug}/enroll.
func Enroll(log *slog.Logger, paths Paths, enrollment service.EnrollmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			render.JSON(w, r, map[string]int{"status": http.StatusOK})
			return
		}

		slug, err := courseSlug(r)
		if err != nil || slug == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, failure("Invalid course slug"))
			return
		}

		log := log.With(
			logger.Module("api.enroll"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("course", slug),
		)

		query := parseEnrollQuery(r)
		outcome, err := enrollment.Admit(r.Context(), &model.AdmitParams{
			CourseSlug: slug,
			Passcode:   query.Passcode,
			UserID:     session.UserFromContext(r.Context()),
			ReturnTo:   query.ReturnTo,
			Origin:     originalURL(r),
		})
		if errors.Is(err, model.ErrCourseNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, failure("Course not found"))
			return
		}
		if err != nil {
			log.Error("enrollment failed", logger.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, failure("Enrollment failed"))
			return
		}

		http.Redirect(w, r, paths.redirectFor(outcome), http.StatusFound)
	}
}

// Paths are the redirect targets outside this service.
type Paths struct {
	AuthPath              string
	IncorrectPasscodePath string
}

func (p Paths) redirectFor(o *admission.Outcome) string {
	switch o.Reason {
	case admission.ReasonCourseEnded:
		return coursePath(o.Course.Slug, url.Values{"notice": {string(admission.ReasonCourseEnded)}})
	case admission.ReasonAuthenticationRequired:
		return p.AuthPath + "?" + url.Values{"origin": {o.Origin}}.Encode()
	case admission.ReasonInvalidPasscode:
		return p.IncorrectPasscodePath
	case admission.ReasonAlreadyEnrolled:
		return coursePath(o.Course.Slug, url.Values{"enrolled": {"false"}})
	}

	q := url.Values{"enrolled": {"true"}}
	if validReturnTo(o.ReturnTo) {
		q.Set("return_to", o.ReturnTo)
	}

	return coursePath(o.Course.Slug, q)
}

func coursePath(slug string, q url.Values) string {
	return "/courses/" + url.PathEscape(slug) + "?" + q.Encode()
}

// originalURL rebuilds the absolute URL the client requested.
func originalURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host + r.URL.RequestURI()
}
