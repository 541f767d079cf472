package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/studentlms/backend/models"
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction.
	// Automatically commits if the function succeeds, rolls back on error.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// UserUpdate is a partial update of a user profile. Nil fields are
// absent and left untouched; non-nil fields are applied.
type UserUpdate struct {
	Name      *string
	AvatarURL *string
}

// IsEmpty reports whether no field is set
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.AvatarURL == nil
}

// ResourceUpdate is a partial update of a resource
type ResourceUpdate struct {
	Title       *string
	Description *string
	FileURL     *string
	Tags        *models.StringList
}

// IsEmpty reports whether no field is set
func (u ResourceUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.FileURL == nil && u.Tags == nil
}

// ResourceRequestUpdate is a partial update of a resource request
type ResourceRequestUpdate struct {
	Topic           *string
	Description     *string
	PreferredFormat *models.PreferredFormat
}

// IsEmpty reports whether no field is set
func (u ResourceRequestUpdate) IsEmpty() bool {
	return u.Topic == nil && u.Description == nil && u.PreferredFormat == nil
}

// RequestStatusUpdate moves a resource request through its lifecycle,
// optionally recording who fulfilled it and with which resource.
type RequestStatusUpdate struct {
	Status              models.RequestStatus
	FulfilledBy         *uuid.UUID
	FulfilledResourceID *uuid.UUID
}

// TutorUpdate is a partial update of a tutor profile
type TutorUpdate struct {
	Subjects     *models.StringList
	Bio          *string
	HourlyRate   *float64
	Availability *models.JSONMap
	ContactEmail *string
	BookingLink  *string
	IsAvailable  *bool
}

// IsEmpty reports whether no field is set
func (u TutorUpdate) IsEmpty() bool {
	return u.Subjects == nil && u.Bio == nil && u.HourlyRate == nil &&
		u.Availability == nil && u.ContactEmail == nil && u.BookingLink == nil &&
		u.IsAvailable == nil
}

// PostUpdate is a partial update of a post
type PostUpdate struct {
	Title          *string
	Description    *string
	CategoryID     *uuid.UUID
	AttachmentURLs *models.StringList
	IsActive       *bool
}

// IsEmpty reports whether no field is set
func (u PostUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.CategoryID == nil &&
		u.AttachmentURLs == nil && u.IsActive == nil
}

// UserRepository handles user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by canonical email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// EmailExists reports whether a user with the email is on file
	EmailExists(ctx context.Context, email string) (bool, error)

	// List retrieves users, optionally filtered by role, newest first
	List(ctx context.Context, role *models.UserRole, limit int) ([]*models.User, error)

	// Update applies a partial profile update and returns the updated row
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*models.User, error)

	// UpdatePasswordHash replaces the stored credential hash in place
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

// CategoryRepository handles category data operations
type CategoryRepository interface {
	// Create creates a new category
	Create(ctx context.Context, category *models.Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)

	// NameExists reports whether a category with the name exists
	NameExists(ctx context.Context, name string) (bool, error)

	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]*models.Category, error)

	// ListWithCounts retrieves all categories with their resource counts
	ListWithCounts(ctx context.Context) ([]*models.CategoryWithCount, error)
}

// ResourceRepository handles learning resource data operations
type ResourceRepository interface {
	// Create creates a new resource
	Create(ctx context.Context, resource *models.Resource) error

	// GetByID retrieves a resource by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error)

	// List retrieves resources, newest first
	List(ctx context.Context, limit int) ([]*models.Resource, error)

	// ListByCategory retrieves resources in a category, newest first
	ListByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]*models.Resource, error)

	// Search retrieves resources matching a case-insensitive substring
	// of title or description, optionally filtered by category and
	// file type, newest first
	Search(ctx context.Context, query string, categoryID *uuid.UUID, fileType *models.FileType, limit int) ([]*models.Resource, error)

	// IncrementViewCount bumps the view counter
	IncrementViewCount(ctx context.Context, id uuid.UUID) error

	// IncrementDownloadCount bumps the download counter
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) error

	// Update applies a partial update and returns the updated row
	Update(ctx context.Context, id uuid.UUID, update ResourceUpdate) (*models.Resource, error)

	// Delete removes a resource
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResourceRequestRepository handles resource request data operations
type ResourceRequestRepository interface {
	// Create creates a new resource request
	Create(ctx context.Context, request *models.ResourceRequest) error

	// GetByID retrieves a request by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.ResourceRequest, error)

	// List retrieves requests, optionally filtered by status, newest first
	List(ctx context.Context, status *models.RequestStatus, limit int) ([]*models.ResourceRequest, error)

	// ListByUser retrieves requests created by a user, newest first
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.ResourceRequest, error)

	// UpdateStatus moves a request through its lifecycle and returns
	// the updated row
	UpdateStatus(ctx context.Context, id uuid.UUID, update RequestStatusUpdate) (*models.ResourceRequest, error)

	// Update applies a partial update and returns the updated row
	Update(ctx context.Context, id uuid.UUID, update ResourceRequestUpdate) (*models.ResourceRequest, error)

	// Delete removes a request
	Delete(ctx context.Context, id uuid.UUID) error
}

// TutorRepository handles tutor profile data operations
type TutorRepository interface {
	// Create creates a new tutor profile
	Create(ctx context.Context, tutor *models.Tutor) error

	// GetByID retrieves a tutor profile joined with the owning user
	GetByID(ctx context.Context, id uuid.UUID) (*models.TutorProfile, error)

	// List retrieves tutor profiles, optionally filtered by
	// availability, best rated first
	List(ctx context.Context, available *bool, limit int) ([]*models.TutorProfile, error)

	// ListSubjects retrieves the distinct subjects offered by
	// available tutors, sorted
	ListSubjects(ctx context.Context) ([]string, error)

	// UpdateAvailability flips the availability flag
	UpdateAvailability(ctx context.Context, id uuid.UUID, available bool) error

	// Update applies a partial update and returns the updated profile
	Update(ctx context.Context, id uuid.UUID, update TutorUpdate) (*models.TutorProfile, error)

	// Delete removes a tutor profile
	Delete(ctx context.Context, id uuid.UUID) error
}

// TutorRequestRepository handles tutor request data operations
type TutorRequestRepository interface {
	// Create creates a new tutor request
	Create(ctx context.Context, request *models.TutorRequest) error

	// List retrieves tutor requests joined with the requesting
	// student's name, optionally filtered by status, newest first
	List(ctx context.Context, status *models.TutorRequestStatus, limit int) ([]*models.TutorRequestWithStudent, error)
}

// PostRepository handles community post data operations
type PostRepository interface {
	// Create creates a new post
	Create(ctx context.Context, post *models.Post) error

	// GetByID retrieves a post by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)

	// List retrieves active posts, pinned first then newest first,
	// optionally filtered by post type and category
	List(ctx context.Context, postType *models.PostType, categoryID *uuid.UUID, limit int) ([]*models.Post, error)

	// ListByAuthor retrieves posts by an author, newest first
	ListByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]*models.Post, error)

	// Update applies a partial update and returns the updated row
	Update(ctx context.Context, id uuid.UUID, update PostUpdate) (*models.Post, error)

	// SoftDelete marks a post inactive
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// Repositories bundles every repository implementation
type Repositories struct {
	Users            UserRepository
	Categories       CategoryRepository
	Resources        ResourceRepository
	ResourceRequests ResourceRequestRepository
	Tutors           TutorRepository
	TutorRequests    TutorRequestRepository
	Posts            PostRepository
}
