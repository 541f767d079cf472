package handlers

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
