package models

import (
	"fmt"
	"time"
)

type ApplicationStatus string

const (
	ApplicationDraft       ApplicationStatus = "draft"
	ApplicationSubmitted   ApplicationStatus = "submitted"
	ApplicationUnderReview ApplicationStatus = "under_review"
	ApplicationApproved    ApplicationStatus = "approved"
	ApplicationRejected    ApplicationStatus = "rejected"

	// ApplicationNotStarted is reported when the user has no application.
	// It is never stored.
	ApplicationNotStarted ApplicationStatus = "not_started"
)

// ParseApplicationStatus accepts stored statuses only.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(s); st {
	case ApplicationDraft, ApplicationSubmitted, ApplicationUnderReview,
		ApplicationApproved, ApplicationRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsFinal reports whether a review has concluded. A rejection counts as final.
func (s ApplicationStatus) IsFinal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// IsReview reports whether moving into s stamps ReviewedAt.
func (s ApplicationStatus) IsReview() bool {
	return s == ApplicationUnderReview || s.IsFinal()
}

// Application is a user's onboarding application. Any status may move to
// any other status.
type Application struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt *time.Time        `json:"submittedAt,omitempty"`
	ReviewedAt  *time.Time        `json:"reviewedAt,omitempty"`
	ReviewNotes string            `json:"reviewNotes,omitempty"`
}

// Clone returns a deep copy.
func (a Application) Clone() Application {
	if a.SubmittedAt != nil {
		t := *a.SubmittedAt
		a.SubmittedAt = &t
	}
	if a.ReviewedAt != nil {
		t := *a.ReviewedAt
		a.ReviewedAt = &t
	}
	return a
}
