// Package admission evaluates the ordered gates that decide whether a user
// may join a course.
package admission

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	"github.com/jnst/self-enrollment/internal/model"
)

// Reason identifies why an admission was rejected. ReasonNone means the
// attempt passed.
type Reason string

const (
	ReasonNone                   Reason = ""
	ReasonCourseEnded            Reason = "course_ended"
	ReasonAuthenticationRequired Reason = "authentication_required"
	ReasonInvalidPasscode        Reason = "invalid_passcode"
	ReasonAlreadyEnrolled        Reason = "already_enrolled"
)

// Input is what every gate sees. Course is always resolved before gates run.
type Input struct {
	Course   *model.Course
	UserID   *uuid.UUID
	Passcode *string
	Now      time.Time
}

// Gate is a single pass/reject check.
type Gate struct {
	Name  string
	Check func(in Input) Reason
}

// CourseEnded rejects courses whose end is strictly in the past.
var CourseEnded = Gate{
	Name: "course_ended",
	Check: func(in Input) Reason {
		if in.Course.Ended(in.Now) {
			return ReasonCourseEnded
		}
		return ReasonNone
	},
}

// Authenticated rejects anonymous callers.
var Authenticated = Gate{
	Name: "authenticated",
	Check: func(in Input) Reason {
		if in.UserID == nil {
			return ReasonAuthenticationRequired
		}
		return ReasonNone
	},
}

// Passcode requires an exact match when the course has a passcode set.
var Passcode = Gate{
	Name: "passcode",
	Check: func(in Input) Reason {
		if in.Course.Passcode == nil {
			return ReasonNone
		}
		if in.Passcode == nil || !equal(*in.Passcode, *in.Course.Passcode) {
			return ReasonInvalidPasscode
		}
		return ReasonNone
	},
}

// Gates returns the pre-enrollment gates in evaluation order.
func Gates() []Gate {
	return []Gate{CourseEnded, Authenticated, Passcode}
}

// Run evaluates gates in order and returns the first rejection together with
// the name of the gate that produced it.
func Run(gates []Gate, in Input) (Reason, string) {
	for _, g := range gates {
		if reason := g.Check(in); reason != ReasonNone {
			return reason, g.Name
		}
	}

	return ReasonNone, ""
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Outcome is the result of one admission attempt.
type Outcome struct {
	Reason     Reason
	Course     *model.Course
	Membership *model.Membership
	// Origin is set for ReasonAuthenticationRequired so the caller can come back after sign-in.
	Origin   string
	ReturnTo string
}

// Admitted reports whether the attempt created a membership.
func (o *Outcome) Admitted() bool {
	return o.Reason == ReasonNone && o.Membership != nil
}

// Admit builds an admitted outcome.
func Admit(course *model.Course, m *model.Membership, returnTo string) *Outcome {
	return &Outcome{Course: course, Membership: m, ReturnTo: returnTo}
}

// Reject builds a rejected outcome.
func Reject(course *model.Course, reason Reason) *Outcome {
	return &Outcome{Course: course, Reason: reason}
}
