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

var resourceColumnNames = []string{
	"id", "title", "description", "category_id", "file_url", "file_type",
	"tags", "author_id", "download_count", "view_count", "created_at", "updated_at",
}

func resourceRow(resource *models.Resource) *sqlmock.Rows {
	return sqlmock.NewRows(resourceColumnNames).AddRow(
		resource.ID, resource.Title, resource.Description, resource.CategoryID,
		resource.FileURL, resource.FileType, []byte(`["math"]`), resource.AuthorID,
		resource.DownloadCount, resource.ViewCount, resource.CreatedAt, resource.UpdatedAt,
	)
}

func TestResourceRepository_GetByID(t *testing.T) {
	t.Run("found with decoded tags", func(t *testing.T) {
		resource := models.NewResource("Calculus I notes", uuid.New(), uuid.New())

		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT .+ FROM resources WHERE id").
			WithArgs(resource.ID).
			WillReturnRows(resourceRow(resource))

		repo := NewResourceRepository(db, zap.NewNop())
		got, err := repo.GetByID(context.Background(), resource.ID)

		require.NoError(t, err)
		assert.Equal(t, resource.Title, got.Title)
		assert.Equal(t, models.StringList{"math"}, got.Tags)
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		id := uuid.New()

		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT .+ FROM resources WHERE id").
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		repo := NewResourceRepository(db, zap.NewNop())
		_, err := repo.GetByID(context.Background(), id)

		assert.ErrorIs(t, err, services.ErrResourceNotFound)
	})
}

func TestResourceRepository_Search(t *testing.T) {
	t.Run("all filters are numbered in order", func(t *testing.T) {
		resource := models.NewResource("Calculus I notes", uuid.New(), uuid.New())
		categoryID := resource.CategoryID
		fileType := models.FileTypePDF

		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("WHERE (title ILIKE $1 OR description ILIKE $1) AND category_id = $2 AND file_type = $3 ORDER BY created_at DESC LIMIT $4")).
			WithArgs("%calculus%", categoryID, fileType, 50).
			WillReturnRows(resourceRow(resource))

		repo := NewResourceRepository(db, zap.NewNop())
		results, err := repo.Search(context.Background(), "calculus", &categoryID, &fileType, 50)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty query skips the where clause", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM resources ORDER BY created_at DESC LIMIT $1")).
			WithArgs(50).
			WillReturnRows(sqlmock.NewRows(resourceColumnNames))

		repo := NewResourceRepository(db, zap.NewNop())
		results, err := repo.Search(context.Background(), "", nil, nil, 50)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestResourceRepository_IncrementViewCount(t *testing.T) {
	t.Run("bumps the counter", func(t *testing.T) {
		id := uuid.New()

		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE resources SET view_count = view_count + 1 WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewResourceRepository(db, zap.NewNop())
		require.NoError(t, repo.IncrementViewCount(context.Background(), id))
	})

	t.Run("unknown resource maps to not found", func(t *testing.T) {
		id := uuid.New()

		db, mock := newMockDB(t)
		mock.ExpectExec("UPDATE resources SET view_count").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewResourceRepository(db, zap.NewNop())
		err := repo.IncrementViewCount(context.Background(), id)

		assert.ErrorIs(t, err, services.ErrResourceNotFound)
	})
}

func TestResourceRepository_Update(t *testing.T) {
	t.Run("set clause only carries provided fields", func(t *testing.T) {
		resource := models.NewResource("Renamed notes", uuid.New(), uuid.New())
		title := "Renamed notes"

		db, mock := newMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE resources SET title = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2 RETURNING")).
			WithArgs(title, resource.ID).
			WillReturnRows(resourceRow(resource))

		repo := NewResourceRepository(db, zap.NewNop())
		got, err := repo.Update(context.Background(), resource.ID, repositories.ResourceUpdate{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, title, got.Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update never reaches the database", func(t *testing.T) {
		db, mock := newMockDB(t)

		repo := NewResourceRepository(db, zap.NewNop())
		_, err := repo.Update(context.Background(), uuid.New(), repositories.ResourceUpdate{})

		assert.ErrorIs(t, err, services.ErrNoFieldsToUpdate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestResourceRepository_Delete(t *testing.T) {
	t.Run("deleting an unknown resource maps to not found", func(t *testing.T) {
		id := uuid.New()

		db, mock := newMockDB(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM resources WHERE id = $1")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewResourceRepository(db, zap.NewNop())
		err := repo.Delete(context.Background(), id)

		assert.ErrorIs(t, err, services.ErrResourceNotFound)
	})
}
