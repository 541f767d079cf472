package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/studentlms/backend/config"
	"go.uber.org/zap"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := cfg.DSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// Stats returns database connection pool statistics
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}

// InitSchema initializes the database schema
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
		-- Users table
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(254) NOT NULL UNIQUE,
			name VARCHAR(100) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'student',
			avatar_url TEXT,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Categories table
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name VARCHAR(200) NOT NULL UNIQUE,
			description TEXT,
			icon VARCHAR(100),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Resources table
		CREATE TABLE IF NOT EXISTS resources (
			id UUID PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			description TEXT,
			category_id UUID NOT NULL REFERENCES categories(id),
			file_url TEXT,
			file_type VARCHAR(20),
			tags JSONB NOT NULL DEFAULT '[]',
			author_id UUID NOT NULL REFERENCES users(id),
			download_count INTEGER NOT NULL DEFAULT 0,
			view_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Resource requests table
		CREATE TABLE IF NOT EXISTS resource_requests (
			id UUID PRIMARY KEY,
			topic VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			category_id UUID REFERENCES categories(id),
			preferred_format VARCHAR(20) NOT NULL DEFAULT 'any',
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			requested_by UUID NOT NULL REFERENCES users(id),
			fulfilled_by UUID,
			fulfilled_resource_id UUID,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Tutors table
		CREATE TABLE IF NOT EXISTS tutors (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			subjects JSONB NOT NULL DEFAULT '[]',
			bio TEXT,
			hourly_rate DOUBLE PRECISION,
			availability JSONB NOT NULL DEFAULT '{}',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_reviews INTEGER NOT NULL DEFAULT 0,
			contact_email VARCHAR(254),
			booking_link TEXT,
			is_available BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Tutor requests table
		CREATE TABLE IF NOT EXISTS tutor_requests (
			id UUID PRIMARY KEY,
			student_id UUID NOT NULL REFERENCES users(id),
			subject VARCHAR(200) NOT NULL,
			description TEXT,
			preferred_schedule VARCHAR(200),
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			matched_tutor_id UUID,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Posts table
		CREATE TABLE IF NOT EXISTS posts (
			id UUID PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			description TEXT NOT NULL,
			post_type VARCHAR(20) NOT NULL,
			category_id UUID REFERENCES categories(id),
			author_id UUID NOT NULL REFERENCES users(id),
			attachment_urls JSONB NOT NULL DEFAULT '[]',
			is_pinned BOOLEAN NOT NULL DEFAULT false,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Indexes for lookups and list filters
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
		CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);

		CREATE INDEX IF NOT EXISTS idx_resources_category_id ON resources(category_id);
		CREATE INDEX IF NOT EXISTS idx_resources_author_id ON resources(author_id);
		CREATE INDEX IF NOT EXISTS idx_resources_created_at ON resources(created_at DESC);

		CREATE INDEX IF NOT EXISTS idx_resource_requests_status ON resource_requests(status);
		CREATE INDEX IF NOT EXISTS idx_resource_requests_requested_by ON resource_requests(requested_by);

		CREATE INDEX IF NOT EXISTS idx_tutors_user_id ON tutors(user_id);
		CREATE INDEX IF NOT EXISTS idx_tutors_is_available ON tutors(is_available);

		CREATE INDEX IF NOT EXISTS idx_tutor_requests_status ON tutor_requests(status);
		CREATE INDEX IF NOT EXISTS idx_tutor_requests_student_id ON tutor_requests(student_id);

		CREATE INDEX IF NOT EXISTS idx_posts_post_type ON posts(post_type);
		CREATE INDEX IF NOT EXISTS idx_posts_category_id ON posts(category_id);
		CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id);
		CREATE INDEX IF NOT EXISTS idx_posts_is_active ON posts(is_active);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized")
	return nil
}
