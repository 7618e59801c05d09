package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/rueidis"

	"github.com/jnst/self-enrollment/internal/logger"
	"github.com/jnst/self-enrollment/internal/model"
)

const courseCacheKeyPrefix = "course:slug:"

// CachedCourseRepository serves course lookups from Redis client-side cache and
// falls back to the wrapped repository. Misses are not cached.
type CachedCourseRepository struct {
	next   CourseRepository
	client rueidis.Client
	ttl    time.Duration
}

// NewCachedCourseRepository wraps next with a Redis-backed cache.
func NewCachedCourseRepository(next CourseRepository, client rueidis.Client, ttl time.Duration) CourseRepository {
	return &CachedCourseRepository{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

// FindBySlug retrieves a course by slug.
func (r *CachedCourseRepository) FindBySlug(ctx context.Context, slug string) (*model.Course, error) {
	key := courseCacheKeyPrefix + slug

	cached, err := r.client.DoCache(ctx, r.client.B().Get().Key(key).Cache(), r.ttl).ToString()
	switch {
	case err == nil:
		course, decodeErr := decodeCourse(cached)
		if decodeErr == nil {
			return course, nil
		}
		slog.Warn("discarding undecodable cached course", logger.Module("repository.course_cache"),
			slog.String("slug", slug), logger.Err(decodeErr))
	case !rueidis.IsRedisNil(err):
		slog.Warn("course cache read failed", logger.Module("repository.course_cache"),
			slog.String("slug", slug), logger.Err(err))
	}

	course, err := r.next.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	encoded, err := encodeCourse(course)
	if err != nil {
		return course, nil
	}

	setCmd := r.client.B().Set().Key(key).Value(encoded).PxMilliseconds(r.expiryMillis()).Build()
	if err := r.client.Do(ctx, setCmd).Error(); err != nil {
		slog.Warn("course cache write failed", logger.Module("repository.course_cache"),
			slog.String("slug", slug), logger.Err(err))
	}

	return course, nil
}

// expiryMillis is the PX argument for cache writes. Redis rejects an expiry
// of zero, so sub-millisecond TTLs are raised to one millisecond.
func (r *CachedCourseRepository) expiryMillis() int64 {
	return max(r.ttl.Milliseconds(), 1)
}

// cachedCourse mirrors model.Course including the passcode, which the model
// keeps out of its JSON form.
type cachedCourse struct {
	ID                  uuid.UUID `json:"id"`
	Slug                string    `json:"slug"`
	Title               string    `json:"title"`
	Start               time.Time `json:"start"`
	End                 time.Time `json:"end"`
	Passcode            *string   `json:"passcode"`
	Submitted           bool      `json:"submitted"`
	RecentRevisionCount int64     `json:"recent_revision_count"`
	CharacterSum        int64     `json:"character_sum"`
	UploadsInUseCount   int64     `json:"uploads_in_use_count"`
	UploadUsagesCount   int64     `json:"upload_usages_count"`
	CreatedAt           time.Time `json:"created_at"`
}

func encodeCourse(c *model.Course) (string, error) {
	b, err := json.Marshal(cachedCourse(*c))
	if err != nil {
		return "", fmt.Errorf("failed to encode course: %w", err)
	}

	return string(b), nil
}

func decodeCourse(s string) (*model.Course, error) {
	var cc cachedCourse
	if err := json.Unmarshal([]byte(s), &cc); err != nil {
		return nil, fmt.Errorf("failed to decode course: %w", err)
	}

	course := model.Course(cc)

	return &course, nil
}
