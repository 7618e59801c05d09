package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jnst/self-enrollment/internal/model"
	"github.com/jnst/self-enrollment/internal/repository"
)

const classroomProgramCourse = "ClassroomProgramCourse"

// CohortServiceImpl implements CohortService.
type CohortServiceImpl struct {
	cohorts           repository.CohortRepository
	memberships       repository.MembershipRepository
	defaultCourseType string
}

// NewCohortServiceImpl creates a new CohortService implementation.
func NewCohortServiceImpl(
	cohorts repository.CohortRepository,
	memberships repository.MembershipRepository,
	defaultCourseType string,
) CohortService {
	return &CohortServiceImpl{
		cohorts:           cohorts,
		memberships:       memberships,
		defaultCourseType: defaultCourseType,
	}
}

// Overview returns the cohort's courses ordered by recent revisions (desc)
// then title, with upload and character totals.
func (s *CohortServiceImpl) Overview(ctx context.Context, cohortSlug string) (*model.CohortOverview, error) {
	cohort, courses, err := s.cohortCourses(ctx, cohortSlug)
	if err != nil {
		return nil, err
	}

	overview := &model.CohortOverview{
		Cohort:             *cohort,
		Courses:            sortByRecentEdits(courses),
		CourseStringPrefix: s.courseStringPrefix(),
	}
	for _, c := range courses {
		overview.CharacterSum += c.CharacterSum
		overview.UploadsInUseCount += c.UploadsInUseCount
		overview.UploadUsagesCount += c.UploadUsagesCount
	}

	return overview, nil
}

// UserCourses returns the user's current and future courses.
func (s *CohortServiceImpl) UserCourses(ctx context.Context, userID uuid.UUID) ([]*model.Course, error) {
	return s.memberships.ListCurrentCourses(ctx, userID, nowFunc())
}

func (s *CohortServiceImpl) cohortCourses(ctx context.Context, slug string) (*model.Cohort, []*model.Course, error) {
	if slug == model.UnsubmittedCohortSlug {
		courses, err := s.cohorts.ListUnsubmittedCourses(ctx)
		if err != nil {
			return nil, nil, err
		}
		cohort := model.UnsubmittedCohort

		return &cohort, courses, nil
	}

	cohort, err := s.cohorts.FindCohortBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	courses, err := s.cohorts.ListCohortCourses(ctx, cohort.ID)
	if err != nil {
		return nil, nil, err
	}

	return cohort, courses, nil
}

func (s *CohortServiceImpl) courseStringPrefix() string {
	if s.defaultCourseType == classroomProgramCourse {
		return "courses"
	}

	return "courses_generic"
}

func sortByRecentEdits(courses []*model.Course) []*model.Course {
	sorted := make([]*model.Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RecentRevisionCount != sorted[j].RecentRevisionCount {
			return sorted[i].RecentRevisionCount > sorted[j].RecentRevisionCount
		}
		return sorted[i].Title < sorted[j].Title
	})

	return sorted
}
