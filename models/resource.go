package models

import (
	"time"

	"github.com/google/uuid"
)

// FileType represents the kind of file a resource points at
type FileType string

const (
	FileTypePDF       FileType = "pdf"
	FileTypeVideo     FileType = "video"
	FileTypeNotes     FileType = "notes"
	FileTypePastPaper FileType = "past_paper"
	FileTypeLink      FileType = "link"
	FileTypeOther     FileType = "other"
)

// Resource represents a shared learning resource
type Resource struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Description   *string    `json:"description,omitempty" db:"description"`
	CategoryID    uuid.UUID  `json:"category_id" db:"category_id"`
	FileURL       *string    `json:"file_url,omitempty" db:"file_url"`
	FileType      *FileType  `json:"file_type,omitempty" db:"file_type"`
	Tags          StringList `json:"tags" db:"tags"`
	AuthorID      uuid.UUID  `json:"author_id" db:"author_id"`
	DownloadCount int        `json:"download_count" db:"download_count"`
	ViewCount     int        `json:"view_count" db:"view_count"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Resource model
func (Resource) TableName() string {
	return "resources"
}

// NewResource creates a new Resource instance
func NewResource(title string, categoryID, authorID uuid.UUID) *Resource {
	now := time.Now()
	return &Resource{
		ID:         uuid.New(),
		Title:      title,
		CategoryID: categoryID,
		AuthorID:   authorID,
		Tags:       StringList{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
