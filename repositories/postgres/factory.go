package postgres

import (
	"github.com/studentlms/backend/config"
	"github.com/studentlms/backend/repositories"
	"go.uber.org/zap"
)

// RepositoryFactory creates and manages all repositories
type RepositoryFactory struct {
	db     *DB
	logger *zap.Logger
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(cfg *config.Config, logger *zap.Logger) (*RepositoryFactory, error) {
	db, err := NewDB(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	return &RepositoryFactory{db: db, logger: logger}, nil
}

// NewRepositories creates all repository instances
func (f *RepositoryFactory) NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Users:            NewUserRepository(f.db, f.logger),
		Categories:       NewCategoryRepository(f.db, f.logger),
		Resources:        NewResourceRepository(f.db, f.logger),
		ResourceRequests: NewResourceRequestRepository(f.db, f.logger),
		Tutors:           NewTutorRepository(f.db, f.logger),
		TutorRequests:    NewTutorRequestRepository(f.db, f.logger),
		Posts:            NewPostRepository(f.db, f.logger),
	}
}

// GetTransactionManager returns a transaction manager
func (f *RepositoryFactory) GetTransactionManager() repositories.TransactionManager {
	return NewTransactionManager(f.db, f.logger)
}

// GetDB returns the database connection
func (f *RepositoryFactory) GetDB() *DB {
	return f.db
}

// Close closes the database connection
func (f *RepositoryFactory) Close() error {
	return f.db.Close()
}
