package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/studentlms/backend/models"
	"github.com/studentlms/backend/repositories"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, role *models.UserRole, limit int) ([]*models.User, error) {
	args := m.Called(ctx, role, limit)
	if users := args.Get(0); users != nil {
		return users.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, update repositories.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, id, update)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if category := args.Get(0); category != nil {
		return category.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) NameExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if categories := args.Get(0); categories != nil {
		return categories.([]*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCategoryRepository) ListWithCounts(ctx context.Context) ([]*models.CategoryWithCount, error) {
	args := m.Called(ctx)
	if categories := args.Get(0); categories != nil {
		return categories.([]*models.CategoryWithCount), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockResourceRepository is a mock implementation of ResourceRepository
type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockResourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	args := m.Called(ctx, id)
	if resource := args.Get(0); resource != nil {
		return resource.(*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRepository) List(ctx context.Context, limit int) ([]*models.Resource, error) {
	args := m.Called(ctx, limit)
	if resources := args.Get(0); resources != nil {
		return resources.([]*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*models.Resource, error) {
	args := m.Called(ctx, categoryID, limit)
	if resources := args.Get(0); resources != nil {
		return resources.([]*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRepository) Search(ctx context.Context, query string, categoryID *uuid.UUID, fileType *models.FileType, limit int) ([]*models.Resource, error) {
	args := m.Called(ctx, query, categoryID, fileType, limit)
	if resources := args.Get(0); resources != nil {
		return resources.([]*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResourceRepository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResourceRepository) Update(ctx context.Context, id uuid.UUID, update repositories.ResourceUpdate) (*models.Resource, error) {
	args := m.Called(ctx, id, update)
	if resource := args.Get(0); resource != nil {
		return resource.(*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTutorRepository is a mock implementation of TutorRepository
type MockTutorRepository struct {
	mock.Mock
}

func (m *MockTutorRepository) Create(ctx context.Context, tutor *models.Tutor) error {
	args := m.Called(ctx, tutor)
	return args.Error(0)
}

func (m *MockTutorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TutorProfile, error) {
	args := m.Called(ctx, id)
	if tutor := args.Get(0); tutor != nil {
		return tutor.(*models.TutorProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTutorRepository) List(ctx context.Context, available *bool, limit int) ([]*models.TutorProfile, error) {
	args := m.Called(ctx, available, limit)
	if tutors := args.Get(0); tutors != nil {
		return tutors.([]*models.TutorProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTutorRepository) ListSubjects(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if subjects := args.Get(0); subjects != nil {
		return subjects.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTutorRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

func (m *MockTutorRepository) Update(ctx context.Context, id uuid.UUID, update repositories.TutorUpdate) (*models.TutorProfile, error) {
	args := m.Called(ctx, id, update)
	if tutor := args.Get(0); tutor != nil {
		return tutor.(*models.TutorProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTutorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTutorRequestRepository is a mock implementation of TutorRequestRepository
type MockTutorRequestRepository struct {
	mock.Mock
}

func (m *MockTutorRequestRepository) Create(ctx context.Context, request *models.TutorRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockTutorRequestRepository) List(ctx context.Context, status *models.TutorRequestStatus, limit int) ([]*models.TutorRequestWithStudent, error) {
	args := m.Called(ctx, status, limit)
	if requests := args.Get(0); requests != nil {
		return requests.([]*models.TutorRequestWithStudent), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockResourceRequestRepository is a mock implementation of ResourceRequestRepository
type MockResourceRequestRepository struct {
	mock.Mock
}

func (m *MockResourceRequestRepository) Create(ctx context.Context, request *models.ResourceRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockResourceRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ResourceRequest, error) {
	args := m.Called(ctx, id)
	if request := args.Get(0); request != nil {
		return request.(*models.ResourceRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRequestRepository) List(ctx context.Context, status *models.RequestStatus, limit int) ([]*models.ResourceRequest, error) {
	args := m.Called(ctx, status, limit)
	if requests := args.Get(0); requests != nil {
		return requests.([]*models.ResourceRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRequestRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.ResourceRequest, error) {
	args := m.Called(ctx, userID, limit)
	if requests := args.Get(0); requests != nil {
		return requests.([]*models.ResourceRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, update repositories.RequestStatusUpdate) (*models.ResourceRequest, error) {
	args := m.Called(ctx, id, update)
	if request := args.Get(0); request != nil {
		return request.(*models.ResourceRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRequestRepository) Update(ctx context.Context, id uuid.UUID, update repositories.ResourceRequestUpdate) (*models.ResourceRequest, error) {
	args := m.Called(ctx, id, update)
	if request := args.Get(0); request != nil {
		return request.(*models.ResourceRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockResourceRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	args := m.Called(ctx, id)
	if post := args.Get(0); post != nil {
		return post.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, postType *models.PostType, categoryID *uuid.UUID, limit int) ([]*models.Post, error) {
	args := m.Called(ctx, postType, categoryID, limit)
	if posts := args.Get(0); posts != nil {
		return posts.([]*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*models.Post, error) {
	args := m.Called(ctx, authorID, limit)
	if posts := args.Get(0); posts != nil {
		return posts.([]*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, id uuid.UUID, update repositories.PostUpdate) (*models.Post, error) {
	args := m.Called(ctx, id, update)
	if post := args.Get(0); post != nil {
		return post.(*models.Post), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPostRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTransaction is a mock implementation of Transaction
type MockTransaction struct {
	mock.Mock
}

func (m *MockTransaction) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTransaction) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTransaction) Context() context.Context {
	args := m.Called()
	return args.Get(0).(context.Context)
}

// MockTransactionManager is a mock implementation of TransactionManager
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repositories.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

// InTransaction runs the callback inline unless an error is stubbed,
// mirroring the real manager's run-then-commit contract.
func (m *MockTransactionManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, new(MockTransaction))
}

// newTestTx returns a transaction manager that runs callbacks inline
// without touching a database.
func newTestTx() *MockTransactionManager {
	txMgr := new(MockTransactionManager)
	txMgr.On("InTransaction", mock.Anything, mock.Anything).Return(nil).Maybe()
	return txMgr
}
