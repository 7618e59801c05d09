// Package memstore keeps courses, memberships and outbox events in memory.
// It backs tests and local runs without Postgres.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jnst/self-enrollment/internal/model"
)

type membershipKey struct {
	courseID uuid.UUID
	userID   uuid.UUID
}

// DB is an in-memory store safe for concurrent use.
type DB struct {
	mutex         sync.RWMutex
	courses       map[string]*model.Course
	cohorts       map[string]*model.Cohort
	cohortCourses map[uuid.UUID][]uuid.UUID
	memberships   map[membershipKey]*model.Membership
	outbox        []*model.OutboxEvent
	outboxSeq     int64
	now           func() time.Time
}

// New returns an empty store.
func New() *DB {
	return &DB{
		courses:       make(map[string]*model.Course),
		cohorts:       make(map[string]*model.Cohort),
		cohortCourses: make(map[uuid.UUID][]uuid.UUID),
		memberships:   make(map[membershipKey]*model.Membership),
		now:           time.Now,
	}
}

// AddCourse stores a course, replacing any course with the same slug.
func (db *DB) AddCourse(c *model.Course) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	cp := *c
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
		c.ID = cp.ID
	}
	db.courses[cp.Slug] = &cp
}

// AddCohort stores a cohort and attaches the given courses to it.
func (db *DB) AddCohort(c *model.Cohort, courses ...*model.Course) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	cp := *c
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
		c.ID = cp.ID
	}
	db.cohorts[cp.Slug] = &cp
	for _, course := range courses {
		db.cohortCourses[cp.ID] = append(db.cohortCourses[cp.ID], course.ID)
	}
}

// FindBySlug retrieves a course by slug.
func (db *DB) FindBySlug(_ context.Context, slug string) (*model.Course, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	c, ok := db.courses[slug]
	if !ok {
		return nil, model.ErrCourseNotFound
	}
	cp := *c

	return &cp, nil
}

// FindCohortBySlug retrieves a cohort by slug.
func (db *DB) FindCohortBySlug(_ context.Context, slug string) (*model.Cohort, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	c, ok := db.cohorts[slug]
	if !ok {
		return nil, model.ErrCohortNotFound
	}
	cp := *c

	return &cp, nil
}

// ListCohortCourses returns the courses attached to a cohort.
func (db *DB) ListCohortCourses(_ context.Context, cohortID uuid.UUID) ([]*model.Course, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	var out []*model.Course
	for _, id := range db.cohortCourses[cohortID] {
		if c := db.courseByID(id); c != nil {
			out = append(out, c)
		}
	}

	return out, nil
}

// ListUnsubmittedCourses returns unsubmitted courses without a cohort, newest first.
func (db *DB) ListUnsubmittedCourses(_ context.Context) ([]*model.Course, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	inCohort := make(map[uuid.UUID]bool)
	for _, ids := range db.cohortCourses {
		for _, id := range ids {
			inCohort[id] = true
		}
	}

	var out []*model.Course
	for _, c := range db.courses {
		if c.Submitted || inCohort[c.ID] {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (db *DB) courseByID(id uuid.UUID) *model.Course {
	for _, c := range db.courses {
		if c.ID == id {
			cp := *c
			return &cp
		}
	}

	return nil
}

// Exists reports whether the user already belongs to the course.
func (db *DB) Exists(_ context.Context, courseID, userID uuid.UUID) (bool, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	_, ok := db.memberships[membershipKey{courseID: courseID, userID: userID}]

	return ok, nil
}

// CreateIfAbsent inserts the membership under the write lock, so concurrent
// callers for the same pair see exactly one creation.
func (db *DB) CreateIfAbsent(_ context.Context, params *model.CreateMembershipParams) (*model.Membership, bool, error) {
	if err := params.Validate(); err != nil {
		return nil, false, err
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	key := membershipKey{courseID: params.CourseID, userID: params.UserID}
	if _, ok := db.memberships[key]; ok {
		return nil, false, nil
	}

	m := &model.Membership{
		ID:        uuid.New(),
		CourseID:  params.CourseID,
		UserID:    params.UserID,
		Role:      params.Role,
		CreatedAt: db.now(),
	}
	db.memberships[key] = m
	cp := *m

	return &cp, true, nil
}

// ListCurrentCourses returns the user's courses that end after now.
func (db *DB) ListCurrentCourses(_ context.Context, userID uuid.UUID, now time.Time) ([]*model.Course, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	var out []*model.Course
	for key := range db.memberships {
		if key.userID != userID {
			continue
		}
		if c := db.courseByID(key.courseID); c != nil && c.End.After(now) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].End.Before(out[j].End) })

	return out, nil
}

// Memberships returns a snapshot of all memberships.
func (db *DB) Memberships() []*model.Membership {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	out := make([]*model.Membership, 0, len(db.memberships))
	for _, m := range db.memberships {
		cp := *m
		out = append(out, &cp)
	}

	return out
}

// CreateEvent appends an outbox event.
func (db *DB) CreateEvent(_ context.Context, params *model.CreateOutboxEventParams) (*model.OutboxEvent, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	db.outboxSeq++
	e := &model.OutboxEvent{
		ID:          db.outboxSeq,
		AggregateID: params.AggregateID,
		EventType:   params.EventType,
		Payload:     append([]byte(nil), params.Payload...),
		CreatedAt:   db.now(),
	}
	db.outbox = append(db.outbox, e)
	cp := *e

	return &cp, nil
}

// GetUnpublishedEvents returns up to limit unpublished events in id order.
func (db *DB) GetUnpublishedEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	var out []*model.OutboxEvent
	for _, e := range db.outbox {
		if len(out) == limit {
			break
		}
		if e.PublishedAt == nil {
			cp := *e
			out = append(out, &cp)
		}
	}

	return out, nil
}

// MarkAsPublished marks an outbox event as published.
func (db *DB) MarkAsPublished(_ context.Context, id int64) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for _, e := range db.outbox {
		if e.ID == id {
			now := db.now()
			e.PublishedAt = &now
		}
	}

	return nil
}

// WithTransaction runs fn directly; the store has no rollback.
func (*DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
