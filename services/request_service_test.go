package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"go.uber.org/zap"
)

func TestRequestService_Create(t *testing.T) {
	requestedBy := uuid.New()

	t.Run("successful create defaults to pending and any format", func(t *testing.T) {
		requests := new(MockResourceRequestRepository)
		requests.On("Create", mock.Anything, mock.MatchedBy(func(r *models.ResourceRequest) bool {
			return r.Topic == "Linear algebra past papers" &&
				r.Status == models.RequestStatusPending &&
				r.PreferredFormat == models.FormatAny &&
				r.RequestedBy == requestedBy
		})).Return(nil)

		svc := NewRequestService(requests, zap.NewNop())
		got, err := svc.Create(context.Background(), CreateRequestInput{
			Topic:       "  Linear algebra past papers  ",
			Description: "Anything from the last three years",
		}, requestedBy)

		require.NoError(t, err)
		assert.True(t, got.IsOpen())
		requests.AssertExpectations(t)
	})

	t.Run("explicit preferred format is honored", func(t *testing.T) {
		format := "video"
		requests := new(MockResourceRequestRepository)
		requests.On("Create", mock.Anything, mock.MatchedBy(func(r *models.ResourceRequest) bool {
			return r.PreferredFormat == models.FormatVideo
		})).Return(nil)

		svc := NewRequestService(requests, zap.NewNop())
		_, err := svc.Create(context.Background(), CreateRequestInput{
			Topic:           "Fourier transforms",
			Description:     "A walkthrough with worked examples",
			PreferredFormat: &format,
		}, requestedBy)

		require.NoError(t, err)
		requests.AssertExpectations(t)
	})

	t.Run("blank topic rejected", func(t *testing.T) {
		svc := NewRequestService(new(MockResourceRequestRepository), zap.NewNop())

		_, err := svc.Create(context.Background(), CreateRequestInput{
			Topic:       "   ",
			Description: "Anything",
		}, requestedBy)

		assert.True(t, IsValidationError(err))
	})

	t.Run("unknown preferred format rejected", func(t *testing.T) {
		format := "vinyl"
		svc := NewRequestService(new(MockResourceRequestRepository), zap.NewNop())

		_, err := svc.Create(context.Background(), CreateRequestInput{
			Topic:           "Signals",
			Description:     "Anything",
			PreferredFormat: &format,
		}, requestedBy)

		assert.True(t, IsValidationError(err))
	})
}

func TestRequestService_List(t *testing.T) {
	t.Run("status filter is parsed", func(t *testing.T) {
		status := "fulfilled"
		fulfilled := models.RequestStatusFulfilled

		requests := new(MockResourceRequestRepository)
		requests.On("List", mock.Anything, &fulfilled, DefaultListLimit).Return([]*models.ResourceRequest{}, nil)

		svc := NewRequestService(requests, zap.NewNop())
		_, err := svc.List(context.Background(), &status, 0)

		require.NoError(t, err)
		requests.AssertExpectations(t)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		status := "abandoned"
		svc := NewRequestService(new(MockResourceRequestRepository), zap.NewNop())

		_, err := svc.List(context.Background(), &status, 0)

		assert.True(t, IsValidationError(err))
	})
}

func TestRequestService_UpdateStatus(t *testing.T) {
	requestID := uuid.New()

	t.Run("fulfillment references recorded with fulfilled status", func(t *testing.T) {
		fulfilledBy := uuid.New()
		resourceID := uuid.New()
		fulfilledByStr := fulfilledBy.String()
		resourceIDStr := resourceID.String()

		requests := new(MockResourceRequestRepository)
		requests.On("UpdateStatus", mock.Anything, requestID, mock.MatchedBy(func(u repositories.RequestStatusUpdate) bool {
			return u.Status == models.RequestStatusFulfilled &&
				u.FulfilledBy != nil && *u.FulfilledBy == fulfilledBy &&
				u.FulfilledResourceID != nil && *u.FulfilledResourceID == resourceID
		})).Return(&models.ResourceRequest{ID: requestID, Status: models.RequestStatusFulfilled}, nil)

		svc := NewRequestService(requests, zap.NewNop())
		got, err := svc.UpdateStatus(context.Background(), requestID, UpdateRequestStatusInput{
			Status:              "fulfilled",
			FulfilledBy:         &fulfilledByStr,
			FulfilledResourceID: &resourceIDStr,
		})

		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusFulfilled, got.Status)
		requests.AssertExpectations(t)
	})

	t.Run("fulfillment references ignored for other statuses", func(t *testing.T) {
		fulfilledByStr := uuid.New().String()

		requests := new(MockResourceRequestRepository)
		requests.On("UpdateStatus", mock.Anything, requestID, mock.MatchedBy(func(u repositories.RequestStatusUpdate) bool {
			return u.Status == models.RequestStatusClosed && u.FulfilledBy == nil
		})).Return(&models.ResourceRequest{ID: requestID, Status: models.RequestStatusClosed}, nil)

		svc := NewRequestService(requests, zap.NewNop())
		_, err := svc.UpdateStatus(context.Background(), requestID, UpdateRequestStatusInput{
			Status:      "closed",
			FulfilledBy: &fulfilledByStr,
		})

		require.NoError(t, err)
		requests.AssertExpectations(t)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		svc := NewRequestService(new(MockResourceRequestRepository), zap.NewNop())

		_, err := svc.UpdateStatus(context.Background(), requestID, UpdateRequestStatusInput{Status: "done"})

		assert.True(t, IsValidationError(err))
	})

	t.Run("malformed fulfillment reference rejected", func(t *testing.T) {
		bad := "not-a-uuid"
		svc := NewRequestService(new(MockResourceRequestRepository), zap.NewNop())

		_, err := svc.UpdateStatus(context.Background(), requestID, UpdateRequestStatusInput{
			Status:      "fulfilled",
			FulfilledBy: &bad,
		})

		assert.True(t, IsValidationError(err))
	})
}

func TestRequestService_Update(t *testing.T) {
	requestID := uuid.New()

	t.Run("empty update rejected", func(t *testing.T) {
		svc := NewRequestService(new(MockResourceRequestRepository), zap.NewNop())

		_, err := svc.Update(context.Background(), requestID, UpdateRequestInput{})

		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("partial update only touches provided fields", func(t *testing.T) {
		topic := "  Updated topic  "
		requests := new(MockResourceRequestRepository)
		requests.On("Update", mock.Anything, requestID, mock.MatchedBy(func(u repositories.ResourceRequestUpdate) bool {
			return u.Topic != nil && *u.Topic == "Updated topic" &&
				u.Description == nil && u.PreferredFormat == nil
		})).Return(&models.ResourceRequest{ID: requestID}, nil)

		svc := NewRequestService(requests, zap.NewNop())
		_, err := svc.Update(context.Background(), requestID, UpdateRequestInput{Topic: &topic})

		require.NoError(t, err)
		requests.AssertExpectations(t)
	})
}
