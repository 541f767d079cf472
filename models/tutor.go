package models

import (
	"time"

	"github.com/google/uuid"
)

// Tutor represents a tutoring profile attached to a user
type Tutor struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	Subjects     StringList `json:"subjects" db:"subjects"`
	Bio          *string    `json:"bio,omitempty" db:"bio"`
	HourlyRate   *float64   `json:"hourly_rate,omitempty" db:"hourly_rate"`
	Availability JSONMap    `json:"availability" db:"availability"`
	Rating       float64    `json:"rating" db:"rating"`
	TotalReviews int        `json:"total_reviews" db:"total_reviews"`
	ContactEmail *string    `json:"contact_email,omitempty" db:"contact_email"`
	BookingLink  *string    `json:"booking_link,omitempty" db:"booking_link"`
	IsAvailable  bool       `json:"is_available" db:"is_available"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Tutor model
func (Tutor) TableName() string {
	return "tutors"
}

// NewTutor creates a new Tutor instance
func NewTutor(userID uuid.UUID, subjects []string) *Tutor {
	now := time.Now()
	return &Tutor{
		ID:           uuid.New(),
		UserID:       userID,
		Subjects:     subjects,
		Availability: JSONMap{},
		IsAvailable:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// TutorProfile is a tutor row joined with the owning user's name and email
type TutorProfile struct {
	Tutor
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}
