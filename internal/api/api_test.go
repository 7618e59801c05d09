package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnst/self-enrollment/internal/memstore"
	"github.com/jnst/self-enrollment/internal/model"
	"github.com/jnst/self-enrollment/internal/service"
	"github.com/jnst/self-enrollment/internal/session"
)

type testEnv struct {
	router   http.Handler
	db       *memstore.DB
	verifier *session.Verifier
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := memstore.New()
	verifier := session.NewVerifier("test-secret", "session")

	enrollment := service.NewEnrollmentServiceImpl(db, db, service.NewOutboxNotifier(db))
	cohorts := service.NewCohortServiceImpl(db, db, "ClassroomProgramCourse")
	router := NewRouter(log, Options{
		Paths: Paths{
			AuthPath:              "/users/auth/mediawiki",
			IncorrectPasscodePath: "/errors/incorrect_passcode",
		},
		RequestTimeout: time.Second,
	}, verifier, enrollment, cohorts)

	return &testEnv{router: router, db: db, verifier: verifier}
}

func (e *testEnv) do(t *testing.T, method, target string, user *uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if user != nil {
		token, err := e.verifier.Issue(*user, time.Hour)
		require.NoError(t, err)
		req.AddCookie(e.verifier.Cookie(token))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	return rec
}

func strPtr(s string) *string { return &s }

func TestEnrollRedirects(t *testing.T) {
	user := uuid.New()
	future := time.Now().Add(30 * 24 * time.Hour)

	tests := []struct {
		name     string
		course   *model.Course
		target   string
		user     *uuid.UUID
		wantCode int
		wantLoc  string
	}{
		{
			name:     "admitted",
			course:   &model.Course{Slug: "bio_101", End: future},
			target:   "/courses/bio_101/enroll",
			user:     &user,
			wantCode: http.StatusFound,
			wantLoc:  "/courses/bio_101?enrolled=true",
		},
		{
			name:     "admitted with return path",
			course:   &model.Course{Slug: "bio_101", End: future},
			target:   "/courses/bio_101/enroll?returnTo=%2Fonboarding%2Ffinished",
			user:     &user,
			wantCode: http.StatusFound,
			wantLoc:  "/courses/bio_101?enrolled=true&return_to=%2Fonboarding%2Ffinished",
		},
		{
			name:     "course ended",
			course:   &model.Course{Slug: "bio_101", End: time.Now().Add(-time.Hour)},
			target:   "/courses/bio_101/enroll",
			user:     &user,
			wantCode: http.StatusFound,
			wantLoc:  "/courses/bio_101?notice=course_ended",
		},
		{
			name:     "anonymous",
			course:   &model.Course{Slug: "bio_101", End: future, Passcode: strPtr("ABC")},
			target:   "/courses/bio_101/enroll?passcode=ABC",
			wantCode: http.StatusFound,
			wantLoc: "/users/auth/mediawiki?" + url.Values{
				"origin": {"http://example.com/courses/bio_101/enroll?passcode=ABC"},
			}.Encode(),
		},
		{
			name:     "wrong passcode",
			course:   &model.Course{Slug: "bio_101", End: future, Passcode: strPtr("ABC")},
			target:   "/courses/bio_101/enroll?passcode=abc",
			user:     &user,
			wantCode: http.StatusFound,
			wantLoc:  "/errors/incorrect_passcode",
		},
		{
			name:     "slug with slash",
			course:   &model.Course{Slug: "uni/bio_101", End: future},
			target:   "/courses/uni%2Fbio_101/enroll",
			user:     &user,
			wantCode: http.StatusFound,
			wantLoc:  "/courses/uni%2Fbio_101?enrolled=true",
		},
		{
			name:     "slug with percent sign",
			course:   &model.Course{Slug: "50%_off", End: future},
			target:   "/courses/50%25_off/enroll",
			user:     &user,
			wantCode: http.StatusFound,
			wantLoc:  "/courses/50%25_off?enrolled=true",
		},
		{
			name:     "slug with percent sign and slash",
			course:   &model.Course{Slug: "uni/50%_off", End: future},
			target:   "/courses/uni%2F50%25_off/enroll",
			user:     &user,
			wantCode: http.StatusFound,
			wantLoc:  "/courses/uni%2F50%25_off?enrolled=true",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t)
			env.db.AddCourse(tt.course)

			rec := env.do(t, http.MethodGet, tt.target, tt.user)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
		})
	}
}

func TestEnrollAlreadyEnrolled(t *testing.T) {
	env := setup(t)
	env.db.AddCourse(&model.Course{Slug: "bio_101", End: time.Now().Add(time.Hour)})
	user := uuid.New()

	first := env.do(t, http.MethodGet, "/courses/bio_101/enroll", &user)
	second := env.do(t, http.MethodGet, "/courses/bio_101/enroll", &user)

	assert.Equal(t, "/courses/bio_101?enrolled=true", first.Header().Get("Location"))
	assert.Equal(t, "/courses/bio_101?enrolled=false", second.Header().Get("Location"))
	assert.Len(t, env.db.Memberships(), 1)

	events, err := env.db.GetUnpublishedEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestEnrollNonGetIsAcknowledged(t *testing.T) {
	env := setup(t)
	env.db.AddCourse(&model.Course{Slug: "bio_101", End: time.Now().Add(time.Hour)})
	user := uuid.New()

	for _, method := range []string{http.MethodHead, http.MethodPost} {
		rec := env.do(t, method, "/courses/bio_101/enroll", &user)
		assert.Equal(t, http.StatusOK, rec.Code, method)
	}

	rec := env.do(t, http.MethodPost, "/courses/missing/enroll", &user)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200}`, rec.Body.String())
	assert.Empty(t, env.db.Memberships())
}

func TestEnrollUnknownCourse(t *testing.T) {
	env := setup(t)
	user := uuid.New()

	rec := env.do(t, http.MethodGet, "/courses/missing/enroll", &user)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, env.db.Memberships())
	events, err := env.db.GetUnpublishedEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEnrollDropsForeignReturnTo(t *testing.T) {
	for _, returnTo := range []string{"https://evil.example", "//evil.example", "relative", `/\evil.example`} {
		t.Run(returnTo, func(t *testing.T) {
			env := setup(t)
			env.db.AddCourse(&model.Course{Slug: "bio_101", End: time.Now().Add(time.Hour)})
			user := uuid.New()

			rec := env.do(t, http.MethodGet, "/courses/bio_101/enroll?returnTo="+url.QueryEscape(returnTo), &user)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/courses/bio_101?enrolled=true", rec.Header().Get("Location"))
			assert.Len(t, env.db.Memberships(), 1)
		})
	}
}

func TestEnrollForeignReturnToDoesNotPreemptGates(t *testing.T) {
	env := setup(t)
	env.db.AddCourse(&model.Course{Slug: "bio_101", End: time.Now().Add(time.Hour)})
	user := uuid.New()
	query := "?returnTo=" + url.QueryEscape("https://evil.example")

	rec := env.do(t, http.MethodGet, "/courses/missing/enroll"+query, &user)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/courses/bio_101/enroll"+query, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users/auth/mediawiki?"+url.Values{
		"origin": {"http://example.com/courses/bio_101/enroll" + query},
	}.Encode(), rec.Header().Get("Location"))
	assert.Empty(t, env.db.Memberships())
}

func TestCohortOverviewEndpoint(t *testing.T) {
	env := setup(t)
	a := &model.Course{Slug: "a", Title: "A", RecentRevisionCount: 1, CharacterSum: 10, Submitted: true}
	b := &model.Course{Slug: "b", Title: "B", RecentRevisionCount: 7, CharacterSum: 5, Submitted: true}
	env.db.AddCourse(a)
	env.db.AddCourse(b)
	env.db.AddCohort(&model.Cohort{Slug: "fall_2026", Title: "Fall 2026"}, a, b)

	rec := env.do(t, http.MethodGet, "/cohorts/fall_2026", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                 `json:"success"`
		Data    model.CohortOverview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data.Courses, 2)
	assert.Equal(t, "b", body.Data.Courses[0].Slug)
	assert.Equal(t, int64(15), body.Data.CharacterSum)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/cohorts/unknown", nil).Code)
}

func TestUserCoursesEndpoint(t *testing.T) {
	env := setup(t)
	course := &model.Course{Slug: "bio_101", End: time.Now().Add(time.Hour)}
	env.db.AddCourse(course)
	user := uuid.New()

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/me/courses", nil).Code)

	env.do(t, http.MethodGet, "/courses/bio_101/enroll", &user)
	rec := env.do(t, http.MethodGet, "/me/courses", &user)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []model.Course `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, course.ID, body.Data[0].ID)
}

func TestHealth(t *testing.T) {
	rec := setup(t).do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
