package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jnst/self-enrollment/internal/model"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func useFixedClock() func() {
	nowFunc = func() time.Time { return fixedNow }
	return func() { nowFunc = time.Now }
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []*model.EnrollmentEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event *model.EnrollmentEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, event)
	return n.err
}

func (n *recordingNotifier) recorded() []*model.EnrollmentEvent {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]*model.EnrollmentEvent(nil), n.events...)
}

type fakePublisher struct {
	failIDs   map[int64]bool
	published []int64
}

func (p *fakePublisher) Publish(_ context.Context, event *model.OutboxEvent) error {
	if p.failIDs[event.ID] {
		return errors.New("redis unavailable")
	}
	p.published = append(p.published, event.ID)
	return nil
}

type wikiCall struct {
	method string
	course string
	userID uuid.UUID
}

type fakeWiki struct {
	calls []wikiCall
	err   error
}

func (w *fakeWiki) EnableVisualEditor(_ context.Context, userID uuid.UUID) error {
	w.calls = append(w.calls, wikiCall{method: "EnableVisualEditor", userID: userID})
	return w.err
}

func (w *fakeWiki) EnrollInCourse(_ context.Context, courseSlug string, userID uuid.UUID) error {
	w.calls = append(w.calls, wikiCall{method: "EnrollInCourse", course: courseSlug, userID: userID})
	return w.err
}

func (w *fakeWiki) UpdateCourse(_ context.Context, courseSlug string, userID uuid.UUID) error {
	w.calls = append(w.calls, wikiCall{method: "UpdateCourse", course: courseSlug, userID: userID})
	return w.err
}

func strPtr(s string) *string { return &s }
