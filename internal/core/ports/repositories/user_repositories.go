package repositories

import (
	"context"
	"time"

	"github.com/kshitijraj/authbot_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByIdentifier retrieves a user whose email OR username matches
	// the identifier. When both somehow match different rows, whichever row
	// the query returns first wins; the uniqueness invariants make that case
	// unreachable in practice.
	FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// FindUserByProviderDetails retrieves a user by (provider, provider_id).
	FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. The store's unique indexes are the final
	// arbiter for email/username uniqueness; violations surface as
	// apperrors.ErrDuplicateEmail / apperrors.ErrDuplicateUsername.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's details.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateLastLogin stamps the user's last successful authentication time.
	UpdateLastLogin(ctx context.Context, userID string, lastLoginAt time.Time) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// MarkUserDeleted marks a user as deleted (soft delete).
	MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
