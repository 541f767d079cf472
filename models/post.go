package models

import (
	"time"

	"github.com/google/uuid"
)

// PostType represents the kind of community post
type PostType string

const (
	PostTypeResource     PostType = "resource"
	PostTypeHelpRequest  PostType = "help_request"
	PostTypeTutorFlyer   PostType = "tutor_flyer"
	PostTypeAnnouncement PostType = "announcement"
)

// Post represents a community board post
type Post struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description" db:"description"`
	PostType       PostType   `json:"post_type" db:"post_type"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty" db:"category_id"`
	AuthorID       uuid.UUID  `json:"author_id" db:"author_id"`
	AttachmentURLs StringList `json:"attachment_urls" db:"attachment_urls"`
	IsPinned       bool       `json:"is_pinned" db:"is_pinned"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Post model
func (Post) TableName() string {
	return "posts"
}

// NewPost creates a new Post instance
func NewPost(title, description string, postType PostType, authorID uuid.UUID) *Post {
	now := time.Now()
	return &Post{
		ID:             uuid.New(),
		Title:          title,
		Description:    description,
		PostType:       postType,
		AuthorID:       authorID,
		AttachmentURLs: StringList{},
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
