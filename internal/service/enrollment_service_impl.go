package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jnst/self-enrollment/internal/admission"
	"github.com/jnst/self-enrollment/internal/logger"
	"github.com/jnst/self-enrollment/internal/model"
	"github.com/jnst/self-enrollment/internal/repository"
)

var nowFunc = time.Now

// EnrollmentServiceImpl implements EnrollmentService.
type EnrollmentServiceImpl struct {
	courses     repository.CourseRepository
	memberships repository.MembershipRepository
	notifier    EnrollmentNotifier
	gates       []admission.Gate
}

// NewEnrollmentServiceImpl creates a new EnrollmentService implementation.
func NewEnrollmentServiceImpl(
	courses repository.CourseRepository,
	memberships repository.MembershipRepository,
	notifier EnrollmentNotifier,
) EnrollmentService {
	return &EnrollmentServiceImpl{
		courses:     courses,
		memberships: memberships,
		notifier:    notifier,
		gates:       admission.Gates(),
	}
}

// Admit resolves the course, evaluates the gates in order and, when all pass,
// creates the student membership.
func (s *EnrollmentServiceImpl) Admit(ctx context.Context, params *model.AdmitParams) (*admission.Outcome, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	course, err := s.courses.FindBySlug(ctx, params.CourseSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve course %q: %w", params.CourseSlug, err)
	}

	reason, gate := admission.Run(s.gates, admission.Input{
		Course:   course,
		UserID:   params.UserID,
		Passcode: params.Passcode,
		Now:      nowFunc(),
	})
	if reason != admission.ReasonNone {
		slog.Info("admission rejected",
			logger.Module("service.enrollment"),
			slog.String("course", course.Slug),
			slog.String("gate", gate),
			slog.String("reason", string(reason)),
		)

		outcome := admission.Reject(course, reason)
		if reason == admission.ReasonAuthenticationRequired {
			outcome.Origin = params.Origin
		}

		return outcome, nil
	}

	membership, created, err := s.memberships.CreateIfAbsent(ctx, &model.CreateMembershipParams{
		CourseID: course.ID,
		UserID:   *params.UserID,
		Role:     model.RoleStudent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enroll user: %w", err)
	}

	if !created {
		slog.Info("admission rejected",
			logger.Module("service.enrollment"),
			slog.String("course", course.Slug),
			slog.String("gate", "enrollment"),
			slog.String("reason", string(admission.ReasonAlreadyEnrolled)),
		)

		return admission.Reject(course, admission.ReasonAlreadyEnrolled), nil
	}

	slog.Info("user enrolled",
		logger.Module("service.enrollment"),
		slog.String("course", course.Slug),
		slog.String("user_id", membership.UserID.String()),
		slog.String("membership_id", membership.ID.String()),
	)

	s.notify(context.WithoutCancel(ctx), course, membership.UserID)

	return admission.Admit(course, membership, params.ReturnTo), nil
}

// notify never fails the admission: the membership is already committed.
func (s *EnrollmentServiceImpl) notify(ctx context.Context, course *model.Course, userID uuid.UUID) {
	if s.notifier == nil {
		return
	}

	for _, action := range []model.EventAction{model.EventActionEnrollInCourse, model.EventActionUpdateCourse} {
		err := s.notifier.Notify(ctx, &model.EnrollmentEvent{
			CourseID:   course.ID,
			CourseSlug: course.Slug,
			UserID:     userID,
			Action:     action,
		})
		if err != nil {
			slog.Warn("enrollment notification failed",
				logger.Module("service.enrollment"),
				slog.String("course", course.Slug),
				slog.String("action", string(action)),
				logger.Err(err),
			)
		}
	}
}
