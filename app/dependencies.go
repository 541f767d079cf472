package app

import (
	"context"
	"fmt"

	"github.com/studentlms/backend/auth"
	"github.com/studentlms/backend/config"
	"github.com/studentlms/backend/handlers"
	"github.com/studentlms/backend/middleware"
	"github.com/studentlms/backend/repositories"
	"github.com/studentlms/backend/repositories/postgres"
	"github.com/studentlms/backend/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Users            repositories.UserRepository
	Categories       repositories.CategoryRepository
	Resources        repositories.ResourceRepository
	ResourceRequests repositories.ResourceRequestRepository
	Tutors           repositories.TutorRepository
	TutorRequests    repositories.TutorRequestRepository
	Posts            repositories.PostRepository
	TxManager        repositories.TransactionManager

	// Services
	AuthService     *services.AuthService
	UserService     *services.UserService
	CategoryService *services.CategoryService
	ResourceService *services.ResourceService
	RequestService  *services.RequestService
	TutorService    *services.TutorService
	PostService     *services.PostService

	// Middleware
	AuthMiddleware *middleware.AuthMiddleware

	// Handlers
	AuthHandler     *handlers.AuthHandler
	UserHandler     *handlers.UserHandler
	CategoryHandler *handlers.CategoryHandler
	ResourceHandler *handlers.ResourceHandler
	RequestHandler  *handlers.RequestHandler
	TutorHandler    *handlers.TutorHandler
	PostHandler     *handlers.PostHandler
	HealthHandler   *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	// Initialize PostgreSQL
	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize repositories
	deps.initRepositories()

	// Initialize services, middleware and handlers
	deps.initServices(cfg)
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL database connection and factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	// Test the connection
	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if err := d.DB.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Users = repos.Users
	d.Categories = repos.Categories
	d.Resources = repos.Resources
	d.ResourceRequests = repos.ResourceRequests
	d.Tutors = repos.Tutors
	d.TutorRequests = repos.TutorRequests
	d.Posts = repos.Posts
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
}

// initServices wires the service layer on top of the repositories
func (d *Dependencies) initServices(cfg *config.Config) {
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	d.AuthService = services.NewAuthService(d.Users, d.TxManager, tokens, d.Logger)
	d.UserService = services.NewUserService(d.Users, d.Logger)
	d.CategoryService = services.NewCategoryService(d.Categories, d.Logger)
	d.ResourceService = services.NewResourceService(d.Resources, d.Categories, d.Logger)
	d.RequestService = services.NewRequestService(d.ResourceRequests, d.Logger)
	d.TutorService = services.NewTutorService(d.Tutors, d.TutorRequests, d.Logger)
	d.PostService = services.NewPostService(d.Posts, d.Logger)

	d.AuthMiddleware = middleware.NewAuthMiddleware(d.AuthService, d.Logger)

	d.Logger.Info("services initialized")
}

// initHandlers wires the HTTP handlers on top of the services
func (d *Dependencies) initHandlers() {
	d.AuthHandler = handlers.NewAuthHandler(d.AuthService, d.Logger)
	d.UserHandler = handlers.NewUserHandler(d.UserService, d.Logger)
	d.CategoryHandler = handlers.NewCategoryHandler(d.CategoryService, d.Logger)
	d.ResourceHandler = handlers.NewResourceHandler(d.ResourceService, d.Logger)
	d.RequestHandler = handlers.NewRequestHandler(d.RequestService, d.Logger)
	d.TutorHandler = handlers.NewTutorHandler(d.TutorService, d.Logger)
	d.PostHandler = handlers.NewPostHandler(d.PostService, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.DB.DB, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
