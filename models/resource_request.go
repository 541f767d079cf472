package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the lifecycle state of a resource request
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusFulfilled  RequestStatus = "fulfilled"
	RequestStatusClosed     RequestStatus = "closed"
)

// PreferredFormat represents the format a requester would like a
// resource delivered in
type PreferredFormat string

const (
	FormatPDF       PreferredFormat = "pdf"
	FormatVideo     PreferredFormat = "video"
	FormatNotes     PreferredFormat = "notes"
	FormatPastPaper PreferredFormat = "past_paper"
	FormatAny       PreferredFormat = "any"
)

// ResourceRequest represents a student's ask for a resource that does
// not exist yet
type ResourceRequest struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	Topic               string          `json:"topic" db:"topic"`
	Description         string          `json:"description" db:"description"`
	CategoryID          *uuid.UUID      `json:"category_id,omitempty" db:"category_id"`
	PreferredFormat     PreferredFormat `json:"preferred_format" db:"preferred_format"`
	Status              RequestStatus   `json:"status" db:"status"`
	RequestedBy         uuid.UUID       `json:"requested_by" db:"requested_by"`
	FulfilledBy         *uuid.UUID      `json:"fulfilled_by,omitempty" db:"fulfilled_by"`
	FulfilledResourceID *uuid.UUID      `json:"fulfilled_resource_id,omitempty" db:"fulfilled_resource_id"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the ResourceRequest model
func (ResourceRequest) TableName() string {
	return "resource_requests"
}

// NewResourceRequest creates a new ResourceRequest instance
func NewResourceRequest(topic, description string, requestedBy uuid.UUID) *ResourceRequest {
	now := time.Now()
	return &ResourceRequest{
		ID:              uuid.New(),
		Topic:           topic,
		Description:     description,
		PreferredFormat: FormatAny,
		Status:          RequestStatusPending,
		RequestedBy:     requestedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsOpen returns true while the request still accepts fulfillment
func (r *ResourceRequest) IsOpen() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusInProgress
}
