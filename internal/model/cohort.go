package model

// CohortOverview is the aggregated view of a cohort's courses.
type CohortOverview struct {
	Cohort             Cohort    `json:"cohort"`
	Courses            []*Course `json:"courses"`
	CharacterSum       int64     `json:"character_sum"`
	UploadsInUseCount  int64     `json:"uploads_in_use_count"`
	UploadUsagesCount  int64     `json:"upload_usages_count"`
	CourseStringPrefix string    `json:"course_string_prefix"`
}
