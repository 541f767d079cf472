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

func TestResourceService_Create(t *testing.T) {
	categoryID := uuid.New()
	authorID := uuid.New()
	category := &models.Category{ID: categoryID, Name: "Mathematics"}

	t.Run("successful create with sanitized fields", func(t *testing.T) {
		resources := new(MockResourceRepository)
		categories := new(MockCategoryRepository)
		categories.On("GetByID", mock.Anything, categoryID).Return(category, nil)
		resources.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Resource) bool {
			return r.Title == "Calculus Notes" &&
				r.CategoryID == categoryID &&
				r.AuthorID == authorID
		})).Return(nil)

		svc := NewResourceService(resources, categories, zap.NewNop())
		got, err := svc.Create(context.Background(), CreateResourceInput{
			Title:      "  Calculus Notes  ",
			CategoryID: categoryID.String(),
			Tags:       []string{"Math", "math", "calculus"},
		}, authorID)

		require.NoError(t, err)
		assert.Equal(t, []string{"math", "calculus"}, []string(got.Tags))
		resources.AssertExpectations(t)
	})

	t.Run("unknown category rejected before insert", func(t *testing.T) {
		resources := new(MockResourceRepository)
		categories := new(MockCategoryRepository)
		categories.On("GetByID", mock.Anything, categoryID).Return(nil, ErrCategoryNotFound)

		svc := NewResourceService(resources, categories, zap.NewNop())
		_, err := svc.Create(context.Background(), CreateResourceInput{
			Title:      "Calculus Notes",
			CategoryID: categoryID.String(),
		}, authorID)

		assert.ErrorIs(t, err, ErrCategoryNotFound)
		resources.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("markup-only title rejected", func(t *testing.T) {
		svc := NewResourceService(new(MockResourceRepository), new(MockCategoryRepository), zap.NewNop())

		_, err := svc.Create(context.Background(), CreateResourceInput{
			Title:      "   ",
			CategoryID: categoryID.String(),
		}, authorID)

		assert.True(t, IsValidationError(err))
	})

	t.Run("unsafe file URL rejected", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("GetByID", mock.Anything, categoryID).Return(category, nil)

		svc := NewResourceService(new(MockResourceRepository), categories, zap.NewNop())

		badURL := "javascript:alert(1)"
		_, err := svc.Create(context.Background(), CreateResourceInput{
			Title:      "Calculus Notes",
			CategoryID: categoryID.String(),
			FileURL:    &badURL,
		}, authorID)

		assert.True(t, IsValidationError(err))
	})
}

func TestResourceService_Get(t *testing.T) {
	id := uuid.New()
	makeResource := func() *models.Resource {
		return &models.Resource{ID: id, Title: "Calculus Notes", ViewCount: 3}
	}

	t.Run("records the view", func(t *testing.T) {
		resources := new(MockResourceRepository)
		resources.On("GetByID", mock.Anything, id).Return(makeResource(), nil)
		resources.On("IncrementViewCount", mock.Anything, id).Return(nil)

		svc := NewResourceService(resources, new(MockCategoryRepository), zap.NewNop())
		got, err := svc.Get(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, 4, got.ViewCount)
	})

	t.Run("a lost view does not fail the read", func(t *testing.T) {
		resources := new(MockResourceRepository)
		resources.On("GetByID", mock.Anything, id).Return(makeResource(), nil)
		resources.On("IncrementViewCount", mock.Anything, id).Return(assert.AnError)

		svc := NewResourceService(resources, new(MockCategoryRepository), zap.NewNop())
		got, err := svc.Get(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, 3, got.ViewCount)
	})
}

func TestResourceService_Download(t *testing.T) {
	id := uuid.New()

	t.Run("bumps the download counter", func(t *testing.T) {
		fileURL := "https://example.com/notes.pdf"
		resources := new(MockResourceRepository)
		resources.On("GetByID", mock.Anything, id).Return(&models.Resource{ID: id, FileURL: &fileURL, DownloadCount: 7}, nil)
		resources.On("IncrementDownloadCount", mock.Anything, id).Return(nil)

		svc := NewResourceService(resources, new(MockCategoryRepository), zap.NewNop())
		got, err := svc.Download(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, 8, got.DownloadCount)
		assert.Equal(t, fileURL, *got.FileURL)
	})

	t.Run("resource without a file", func(t *testing.T) {
		resources := new(MockResourceRepository)
		resources.On("GetByID", mock.Anything, id).Return(&models.Resource{ID: id}, nil)

		svc := NewResourceService(resources, new(MockCategoryRepository), zap.NewNop())
		_, err := svc.Download(context.Background(), id)

		assert.True(t, IsValidationError(err))
		resources.AssertNotCalled(t, "IncrementDownloadCount", mock.Anything, mock.Anything)
	})
}

func TestResourceService_Search(t *testing.T) {
	t.Run("invalid file type filter", func(t *testing.T) {
		svc := NewResourceService(new(MockResourceRepository), new(MockCategoryRepository), zap.NewNop())

		bad := "docx"
		_, err := svc.Search(context.Background(), "calculus", SearchFilters{FileType: &bad}, 10)

		assert.True(t, IsValidationError(err))
	})

	t.Run("limit is clamped", func(t *testing.T) {
		resources := new(MockResourceRepository)
		resources.On("Search", mock.Anything, "calculus", (*uuid.UUID)(nil), (*models.FileType)(nil), MaxListLimit).
			Return([]*models.Resource{}, nil)

		svc := NewResourceService(resources, new(MockCategoryRepository), zap.NewNop())
		_, err := svc.Search(context.Background(), "calculus", SearchFilters{}, 10000)

		require.NoError(t, err)
		resources.AssertExpectations(t)
	})
}

func TestResourceService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("empty update rejected", func(t *testing.T) {
		svc := NewResourceService(new(MockResourceRepository), new(MockCategoryRepository), zap.NewNop())

		_, err := svc.Update(context.Background(), id, UpdateResourceInput{})

		assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	})

	t.Run("partial update passes only set fields", func(t *testing.T) {
		title := "Updated Notes"
		resources := new(MockResourceRepository)
		resources.On("Update", mock.Anything, id, mock.MatchedBy(func(u repositories.ResourceUpdate) bool {
			return u.Title != nil && *u.Title == "Updated Notes" &&
				u.Description == nil && u.FileURL == nil && u.Tags == nil
		})).Return(&models.Resource{ID: id, Title: title}, nil)

		svc := NewResourceService(resources, new(MockCategoryRepository), zap.NewNop())
		got, err := svc.Update(context.Background(), id, UpdateResourceInput{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, title, got.Title)
	})
}
