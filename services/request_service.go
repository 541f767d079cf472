package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"github.com/studentlms/backend/validation"
	"go.uber.org/zap"
)

// CreateRequestInput carries the fields accepted when asking for a resource
type CreateRequestInput struct {
	Topic           string  `json:"topic" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	CategoryID      *string `json:"category_id,omitempty"`
	PreferredFormat *string `json:"preferred_format,omitempty"`
}

// UpdateRequestInput carries the optional fields of a request update
type UpdateRequestInput struct {
	Topic           *string `json:"topic,omitempty"`
	Description     *string `json:"description,omitempty"`
	PreferredFormat *string `json:"preferred_format,omitempty"`
}

// UpdateRequestStatusInput moves a request through its lifecycle
type UpdateRequestStatusInput struct {
	Status              string  `json:"status"`
	FulfilledBy         *string `json:"fulfilled_by,omitempty"`
	FulfilledResourceID *string `json:"fulfilled_resource_id,omitempty"`
}

// RequestService handles resource requests
type RequestService struct {
	requests repositories.ResourceRequestRepository
	logger   *zap.Logger
}

// NewRequestService creates a new RequestService instance
func NewRequestService(requests repositories.ResourceRequestRepository, logger *zap.Logger) *RequestService {
	return &RequestService{
		requests: requests,
		logger:   logger,
	}
}

func parseOptionalUUID(field string, value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	idStr, err := validation.ValidateUUID(field, *value)
	if err != nil {
		return nil, validationError(err)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, validationError(err)
	}
	return &id, nil
}

// Create validates and persists a new resource request
func (s *RequestService) Create(ctx context.Context, input CreateRequestInput, requestedBy uuid.UUID) (*models.ResourceRequest, error) {
	topic := validation.SanitizeTitle(input.Topic)
	if topic == "" {
		return nil, NewDomainError(ErrorTypeValidation, "topic is required", nil)
	}
	description := validation.SanitizeText(input.Description)
	if description == "" {
		return nil, NewDomainError(ErrorTypeValidation, "description is required", nil)
	}

	request := models.NewResourceRequest(topic, description, requestedBy)

	categoryID, err := parseOptionalUUID("category_id", input.CategoryID)
	if err != nil {
		return nil, err
	}
	request.CategoryID = categoryID

	if input.PreferredFormat != nil && *input.PreferredFormat != "" {
		format, err := validation.ValidatePreferredFormat(*input.PreferredFormat)
		if err != nil {
			return nil, validationError(err)
		}
		request.PreferredFormat = format
	}

	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("resource request created",
		zap.String("request_id", request.ID.String()),
		zap.String("requested_by", requestedBy.String()))
	return request, nil
}

// GetByID retrieves a single request
func (s *RequestService) GetByID(ctx context.Context, id uuid.UUID) (*models.ResourceRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// List retrieves requests, optionally filtered by lifecycle status
func (s *RequestService) List(ctx context.Context, status *string, limit int) ([]*models.ResourceRequest, error) {
	var statusFilter *models.RequestStatus
	if status != nil && *status != "" {
		parsed, err := validation.ValidateRequestStatus(*status)
		if err != nil {
			return nil, validationError(err)
		}
		statusFilter = &parsed
	}
	return s.requests.List(ctx, statusFilter, clampLimit(limit))
}

// ListByUser retrieves the requests a user created
func (s *RequestService) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.ResourceRequest, error) {
	return s.requests.ListByUser(ctx, userID, clampLimit(limit))
}

// UpdateStatus validates a lifecycle transition and applies it.
// Fulfillment references are only accepted alongside the fulfilled
// status.
func (s *RequestService) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateRequestStatusInput) (*models.ResourceRequest, error) {
	status, err := validation.ValidateRequestStatus(input.Status)
	if err != nil {
		return nil, validationError(err)
	}

	update := repositories.RequestStatusUpdate{Status: status}

	if status == models.RequestStatusFulfilled {
		fulfilledBy, err := parseOptionalUUID("fulfilled_by", input.FulfilledBy)
		if err != nil {
			return nil, err
		}
		fulfilledResourceID, err := parseOptionalUUID("fulfilled_resource_id", input.FulfilledResourceID)
		if err != nil {
			return nil, err
		}
		update.FulfilledBy = fulfilledBy
		update.FulfilledResourceID = fulfilledResourceID
	}

	request, err := s.requests.UpdateStatus(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("resource request status updated",
		zap.String("request_id", id.String()),
		zap.String("status", string(status)))
	return request, nil
}

// Update validates and applies a partial update
func (s *RequestService) Update(ctx context.Context, id uuid.UUID, input UpdateRequestInput) (*models.ResourceRequest, error) {
	update := repositories.ResourceRequestUpdate{}

	if input.Topic != nil {
		topic := validation.SanitizeTitle(*input.Topic)
		if topic == "" {
			return nil, NewDomainError(ErrorTypeValidation, "topic cannot be empty", nil)
		}
		update.Topic = &topic
	}
	if input.Description != nil {
		description := validation.SanitizeText(*input.Description)
		update.Description = &description
	}
	if input.PreferredFormat != nil {
		format, err := validation.ValidatePreferredFormat(*input.PreferredFormat)
		if err != nil {
			return nil, validationError(err)
		}
		update.PreferredFormat = &format
	}

	if update.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	request, err := s.requests.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("resource request updated", zap.String("request_id", id.String()))
	return request, nil
}

// Delete removes a request permanently
func (s *RequestService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("resource request deleted", zap.String("request_id", id.String()))
	return nil
}
