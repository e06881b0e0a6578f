package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kshitijraj/authbot_app/internal/apperrors"
	"github.com/kshitijraj/authbot_app/internal/core/domain"
	portsrepo "github.com/kshitijraj/authbot_app/internal/core/ports/repositories"
	portssvc "github.com/kshitijraj/authbot_app/internal/core/ports/services"
	"github.com/kshitijraj/authbot_app/internal/dto"
	"github.com/kshitijraj/authbot_app/internal/utils"
)

// UserService implements registration, authentication and the OAuth identity
// reconciliation over the user repository.
type UserService struct {
	userRepo   portsrepo.UserRepositoryFacade
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, bcryptCost int) *UserService {
	return &UserService{userRepo: userRepo, bcryptCost: bcryptCost}
}

// Ensure UserService implements the service facade
var _ portssvc.UserSvcFacade = (*UserService)(nil)

// CreateUser creates a new user via the credential registration path.
// Duplicate email/username are rejected up front; the store's unique indexes
// remain the final arbiter for concurrent registrations.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	provider := domain.AuthProvider(req.Provider)
	if provider == "" {
		provider = domain.ProviderEmail
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrDuplicateEmail
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	if req.Username != nil && *req.Username != "" {
		if _, err := s.userRepo.FindUserByUsername(ctx, *req.Username); err == nil {
			return nil, apperrors.ErrDuplicateUsername
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
		}
	}

	hasPassword := req.Password != nil && *req.Password != ""
	if provider == domain.ProviderEmail && !hasPassword {
		return nil, apperrors.ErrMissingPassword
	}

	var passwordHash *string
	if hasPassword {
		hash, err := utils.HashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = &hash
	}

	username := req.Username
	if username == nil || *username == "" {
		generated, err := s.generateUniqueUsername(ctx, usernameFromEmail(req.Email))
		if err != nil {
			return nil, err
		}
		username = &generated
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Email:         req.Email,
		Username:      username,
		Name:          req.Name,
		PasswordHash:  passwordHash,
		Provider:      provider,
		ProviderID:    req.ProviderID,
		AvatarURL:     req.AvatarURL,
		EmailVerified: req.EmailVerified,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in service: %w", err)
	}

	return &user, nil
}

// CreateOAuthUser reconciles an OAuth identity with the account store.
// Decision order: (provider, provider_id) hit logs the user straight in;
// an email hit links the provider onto the existing account; otherwise a
// fresh account is created. The only failure mode is a store error.
func (s *UserService) CreateOAuthUser(ctx context.Context, info domain.OAuthUserInfo) (*domain.User, error) {
	now := time.Now()

	// Fast path: returning OAuth user. Nothing is overwritten except last_login.
	user, err := s.userRepo.FindUserByProviderDetails(ctx, info.Provider, info.ProviderID)
	if err == nil {
		if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
			return nil, fmt.Errorf("failed to update last login: %w", err)
		}
		user.LastLoginAt = &now
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by provider details: %w", err)
	}

	// Linking: same email means the same person. The provider fields migrate
	// to the newest login method; earlier provider identities are not kept
	// alongside (single provider per user). The password hash stays as-is so
	// credential login keeps working for converted email accounts.
	user, err = s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		user.Provider = info.Provider
		providerID := info.ProviderID
		user.ProviderID = &providerID
		if info.Name != "" {
			name := info.Name
			user.Name = &name
		}
		if info.AvatarURL != "" {
			avatarURL := info.AvatarURL
			user.AvatarURL = &avatarURL
		}
		user.UpdatedAt = now
		user.LastLoginAt = &now

		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("failed to link oauth account: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	// New account. OAuth users get a generated username from the email local
	// part; collisions resolve with an integer suffix.
	generated, err := s.generateUniqueUsername(ctx, usernameFromEmail(info.Email))
	if err != nil {
		return nil, err
	}

	providerID := info.ProviderID
	newUser := domain.User{
		UserID:        uuid.NewString(),
		Email:         info.Email,
		Username:      &generated,
		Provider:      info.Provider,
		ProviderID:    &providerID,
		EmailVerified: info.EmailVerified,
		IsActive:      true,
		LastLoginAt:   &now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if info.Name != "" {
		name := info.Name
		newUser.Name = &name
	}
	if info.AvatarURL != "" {
		avatarURL := info.AvatarURL
		newUser.AvatarURL = &avatarURL
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}

	return &newUser, nil
}

// AuthenticateUser authenticates by email-or-username identifier and password.
// Unknown identifier, missing hash and wrong password all collapse into
// ErrInvalidCredentials; an inactive account is a separate internal condition
// that handlers surface with the same external message.
func (s *UserService) AuthenticateUser(ctx context.Context, identifier, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user by identifier: %w", err)
	}

	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrInactiveAccount
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.UserID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email in service: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username in service: %w", err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users in service: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// UpdateUser applies a partial profile update. A password change is re-hashed;
// a username change goes through the same uniqueness pre-check as registration.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	if req.Username != nil && *req.Username != "" && (user.Username == nil || *req.Username != *user.Username) {
		if _, err := s.userRepo.FindUserByUsername(ctx, *req.Username); err == nil {
			return nil, apperrors.ErrDuplicateUsername
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
		}
		user.Username = req.Username
	}
	if req.Name != nil {
		user.Name = req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := utils.HashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = &hash
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user in service: %w", err)
	}

	return user, nil
}

// DeleteUser marks a user as deleted (soft delete).
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete user in service: %w", err)
	}
	return nil
}

// generateUniqueUsername appends an increasing integer suffix to base until a
// free username is found. The store is finite and the suffix space is not, so
// the loop terminates. Concurrent registrations can still race past this
// check; the unique index on username settles it.
func (s *UserService) generateUniqueUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		_, err := s.userRepo.FindUserByUsername(ctx, candidate)
		if errors.Is(err, apperrors.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check username candidate: %w", err)
		}
		candidate = base + strconv.Itoa(counter)
	}
}

// usernameFromEmail derives the base username from the email local part.
func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
