package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jnst/self-enrollment/internal/db"
	"github.com/jnst/self-enrollment/internal/model"
)

// MembershipRepositoryImpl implements MembershipRepository using PostgreSQL.
// Uniqueness of (course_id, user_id) is enforced by courses_users_course_user_key.
type MembershipRepositoryImpl struct {
	db *db.Queries
}

// NewMembershipRepositoryImpl creates a new MembershipRepository implementation.
func NewMembershipRepositoryImpl(pool *pgxpool.Pool) MembershipRepository {
	return &MembershipRepositoryImpl{
		db: db.New(pool),
	}
}

// Exists reports whether the user already belongs to the course.
func (r *MembershipRepositoryImpl) Exists(ctx context.Context, courseID, userID uuid.UUID) (bool, error) {
	return queries(ctx, r.db).MembershipExists(ctx, &db.MembershipExistsParams{
		CourseID: courseID,
		UserID:   userID,
	})
}

// CreateIfAbsent inserts with ON CONFLICT DO NOTHING; no returned row means
// another membership for the pair already existed.
func (r *MembershipRepositoryImpl) CreateIfAbsent(
	ctx context.Context, params *model.CreateMembershipParams,
) (*model.Membership, bool, error) {
	if err := params.Validate(); err != nil {
		return nil, false, err
	}

	row, err := queries(ctx, r.db).CreateMembershipIfAbsent(ctx, &db.CreateMembershipIfAbsentParams{
		ID:       uuid.New(),
		CourseID: params.CourseID,
		UserID:   params.UserID,
		Role:     int16(params.Role),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to create membership: %w", err)
	}

	return toMembership(row), true, nil
}

// ListCurrentCourses returns the user's courses that end after now.
func (r *MembershipRepositoryImpl) ListCurrentCourses(
	ctx context.Context, userID uuid.UUID, now time.Time,
) ([]*model.Course, error) {
	rows, err := queries(ctx, r.db).ListCurrentCoursesForUser(ctx, &db.ListCurrentCoursesForUserParams{
		UserID: userID,
		EndAt:  pgtype.Timestamptz{Time: now, Valid: true},
	})
	if err != nil {
		return nil, err
	}

	return toCourses(rows), nil
}
