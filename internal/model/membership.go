package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the role a user holds within a course.
type Role int16

const (
	// RoleStudent is the only role created by self-enrollment.
	RoleStudent Role = iota
	// RoleInstructor teaches the course.
	RoleInstructor
	// RoleCampusVolunteer supports the course on campus.
	RoleCampusVolunteer
	// RoleOnlineVolunteer supports the course online.
	RoleOnlineVolunteer
	// RoleStaff is program staff.
	RoleStaff
)

var roleNames = map[Role]string{
	RoleStudent:         "student",
	RoleInstructor:      "instructor",
	RoleCampusVolunteer: "campus_volunteer",
	RoleOnlineVolunteer: "online_volunteer",
	RoleStaff:           "staff",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}

	return "unknown"
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Membership records that a user belongs to a course with a role.
type Membership struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMembershipParams represents parameters for creating a membership.
type CreateMembershipParams struct {
	CourseID uuid.UUID
	UserID   uuid.UUID
	Role     Role
}

// Validate validates the create membership parameters.
func (p *CreateMembershipParams) Validate() error {
	if !p.Role.Valid() {
		return ErrInvalidRole
	}

	return nil
}
