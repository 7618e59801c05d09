package repository

import (
	"time"

	"github.com/jnst/self-enrollment/internal/db"
	"github.com/jnst/self-enrollment/internal/model"
)

func toCourse(c *db.Course) *model.Course {
	return &model.Course{
		ID:                  c.ID,
		Slug:                c.Slug,
		Title:               c.Title,
		Start:               c.StartAt.Time,
		End:                 c.EndAt.Time,
		Passcode:            c.Passcode,
		Submitted:           c.Submitted,
		RecentRevisionCount: c.RecentRevisionCount,
		CharacterSum:        c.CharacterSum,
		UploadsInUseCount:   c.UploadsInUseCount,
		UploadUsagesCount:   c.UploadUsagesCount,
		CreatedAt:           c.CreatedAt.Time,
	}
}

func toCourses(rows []*db.Course) []*model.Course {
	courses := make([]*model.Course, len(rows))
	for i, row := range rows {
		courses[i] = toCourse(row)
	}

	return courses
}

func toMembership(m *db.CoursesUser) *model.Membership {
	return &model.Membership{
		ID:        m.ID,
		CourseID:  m.CourseID,
		UserID:    m.UserID,
		Role:      model.Role(m.Role),
		CreatedAt: m.CreatedAt.Time,
	}
}

func toOutboxEvent(e *db.OutboxEvent) *model.OutboxEvent {
	var publishedAt *time.Time
	if e.PublishedAt.Valid {
		publishedAt = &e.PublishedAt.Time
	}

	return &model.OutboxEvent{
		ID:          e.ID,
		AggregateID: e.AggregateID,
		EventType:   e.EventType,
		Payload:     e.Payload,
		CreatedAt:   e.CreatedAt.Time,
		PublishedAt: publishedAt,
	}
}
