package models

import (
	"time"

	"github.com/google/uuid"
)

// TutorRequestStatus represents the match state of a tutor request
type TutorRequestStatus string

const (
	TutorRequestPending TutorRequestStatus = "pending"
	TutorRequestMatched TutorRequestStatus = "matched"
	TutorRequestClosed  TutorRequestStatus = "closed"
)

// TutorRequest represents a student asking to be matched with a tutor
type TutorRequest struct {
	ID                uuid.UUID          `json:"id" db:"id"`
	StudentID         uuid.UUID          `json:"student_id" db:"student_id"`
	Subject           string             `json:"subject" db:"subject"`
	Description       *string            `json:"description,omitempty" db:"description"`
	PreferredSchedule *string            `json:"preferred_schedule,omitempty" db:"preferred_schedule"`
	Status            TutorRequestStatus `json:"status" db:"status"`
	MatchedTutorID    *uuid.UUID         `json:"matched_tutor_id,omitempty" db:"matched_tutor_id"`
	CreatedAt         time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the TutorRequest model
func (TutorRequest) TableName() string {
	return "tutor_requests"
}

// NewTutorRequest creates a new TutorRequest instance
func NewTutorRequest(studentID uuid.UUID, subject string) *TutorRequest {
	now := time.Now()
	return &TutorRequest{
		ID:        uuid.New(),
		StudentID: studentID,
		Subject:   subject,
		Status:    TutorRequestPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TutorRequestWithStudent is a tutor request joined with the
// requesting student's name
type TutorRequestWithStudent struct {
	TutorRequest
	StudentName *string `json:"student_name" db:"student_name"`
}
