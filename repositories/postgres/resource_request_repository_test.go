package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
	"github.com/studentlms/backend/services"
	"go.uber.org/zap"
)

var requestColumnNames = []string{
	"id", "topic", "description", "category_id", "preferred_format", "status",
	"requested_by", "fulfilled_by", "fulfilled_resource_id", "created_at", "updated_at",
}

func requestRow(request *models.ResourceRequest) *sqlmock.Rows {
	return sqlmock.NewRows(requestColumnNames).AddRow(
		request.ID, request.Topic, request.Description, request.CategoryID,
		request.PreferredFormat, request.Status, request.RequestedBy,
		request.FulfilledBy, request.FulfilledResourceID,
		request.CreatedAt, request.UpdatedAt,
	)
}

func TestResourceRequestRepository_UpdateStatus(t *testing.T) {
	requestedBy := uuid.New()

	t.Run("closing leaves fulfillment references untouched", func(t *testing.T) {
		request := models.NewResourceRequest("Linear algebra past papers", "Last three years", requestedBy)
		request.Status = models.RequestStatusClosed

		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE resource_requests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 RETURNING")).
			WithArgs(models.RequestStatusClosed, request.ID).
			WillReturnRows(requestRow(request))

		repo := NewResourceRequestRepository(db, zap.NewNop())
		got, err := repo.UpdateStatus(context.Background(), request.ID, repositories.RequestStatusUpdate{
			Status: models.RequestStatusClosed,
		})

		require.NoError(t, err)
		assert.Equal(t, models.RequestStatusClosed, got.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fulfilling writes both references", func(t *testing.T) {
		fulfilledBy := uuid.New()
		resourceID := uuid.New()
		request := models.NewResourceRequest("Linear algebra past papers", "Last three years", requestedBy)
		request.Status = models.RequestStatusFulfilled
		request.FulfilledBy = &fulfilledBy
		request.FulfilledResourceID = &resourceID

		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE resource_requests SET status = $1, fulfilled_by = $2, fulfilled_resource_id = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $4 RETURNING")).
			WithArgs(models.RequestStatusFulfilled, fulfilledBy, resourceID, request.ID).
			WillReturnRows(requestRow(request))

		repo := NewResourceRequestRepository(db, zap.NewNop())
		got, err := repo.UpdateStatus(context.Background(), request.ID, repositories.RequestStatusUpdate{
			Status:              models.RequestStatusFulfilled,
			FulfilledBy:         &fulfilledBy,
			FulfilledResourceID: &resourceID,
		})

		require.NoError(t, err)
		require.NotNil(t, got.FulfilledBy)
		assert.Equal(t, fulfilledBy, *got.FulfilledBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown request maps to not found", func(t *testing.T) {
		id := uuid.New()

		db, mock := newMockDB(t)
		mock.ExpectQuery("UPDATE resource_requests SET status").
			WillReturnError(sql.ErrNoRows)

		repo := NewResourceRequestRepository(db, zap.NewNop())
		_, err := repo.UpdateStatus(context.Background(), id, repositories.RequestStatusUpdate{
			Status: models.RequestStatusClosed,
		})

		assert.ErrorIs(t, err, services.ErrRequestNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
