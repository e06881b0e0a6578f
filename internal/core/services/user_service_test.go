package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/kshitijraj/authbot_app/internal/apperrors"
	"github.com/kshitijraj/authbot_app/internal/core/domain"
	portssvc "github.com/kshitijraj/authbot_app/internal/core/ports/services"
	"github.com/kshitijraj/authbot_app/internal/core/services"
	"github.com/kshitijraj/authbot_app/internal/dto"
	"github.com/kshitijraj/authbot_app/internal/utils"
)

// --- Mock UserRepository (based on UserService usage) ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn              func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmailFn           func(ctx context.Context, email string) (*domain.User, error)
	FindUserByUsernameFn        func(ctx context.Context, username string) (*domain.User, error)
	FindUserByIdentifierFn      func(ctx context.Context, identifier string) (*domain.User, error)
	FindUserByProviderDetailsFn func(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.User, error)
	ListUsersFn                 func(ctx context.Context, limit, offset int) ([]domain.User, error)
	SaveUserFn                  func(ctx context.Context, user domain.User) error
	UpdateUserFn                func(ctx context.Context, user domain.User) error
	UpdateLastLoginFn           func(ctx context.Context, userID string, lastLoginAt time.Time) error
	MarkUserDeletedFn           func(ctx context.Context, userID string, deletedAt time.Time) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindUserByUsernameFn != nil {
		return m.FindUserByUsernameFn(ctx, username)
	}
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	if m.FindUserByIdentifierFn != nil {
		return m.FindUserByIdentifierFn(ctx, identifier)
	}
	args := m.Called(ctx, identifier)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.User, error) {
	if m.FindUserByProviderDetailsFn != nil {
		return m.FindUserByProviderDetailsFn(ctx, provider, providerID)
	}
	args := m.Called(ctx, provider, providerID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx, limit, offset)
	}
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID string, lastLoginAt time.Time) error {
	if m.UpdateLastLoginFn != nil {
		return m.UpdateLastLoginFn(ctx, userID, lastLoginAt)
	}
	args := m.Called(ctx, userID, lastLoginAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time) error {
	if m.MarkUserDeletedFn != nil {
		return m.MarkUserDeletedFn(ctx, userID, deletedAt)
	}
	args := m.Called(ctx, userID, deletedAt)
	return args.Error(0)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	// MinCost keeps the bcrypt work factor out of test runtime.
	suite.service = services.NewUserService(suite.mockUserRepo, bcrypt.MinCost)
}

func strPtr(s string) *string {
	return &s
}

// --- CreateUser Tests ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	email := "alice@example.com"
	username := "alice"
	password := "password123"

	req := dto.CreateUserRequest{
		Email:    email,
		Username: &username,
		Password: &password,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, username).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == email &&
			user.Username != nil && *user.Username == username &&
			user.PasswordHash != nil && *user.PasswordHash != password &&
			user.Provider == domain.ProviderEmail &&
			user.IsActive
	})).Return(nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdUser)
	suite.NotEmpty(createdUser.UserID)
	suite.Equal(email, createdUser.Email)
	suite.Require().NotNil(createdUser.PasswordHash)
	suite.NotEqual(password, *createdUser.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(*createdUser.PasswordHash), []byte(password)))
	suite.True(createdUser.IsActive)
	suite.Nil(createdUser.LastLoginAt)

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	email := "taken@example.com"
	password := "password123"
	req := dto.CreateUserRequest{Email: email, Password: &password}

	existing := &domain.User{UserID: uuid.NewString(), Email: email}
	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(existing, nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.ErrorIs(err, apperrors.ErrDuplicateEmail)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	email := "bob@example.com"
	username := "bob"
	password := "password123"
	req := dto.CreateUserRequest{Email: email, Username: &username, Password: &password}

	existing := &domain.User{UserID: uuid.NewString(), Username: &username}
	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, username).Return(existing, nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.ErrorIs(err, apperrors.ErrDuplicateUsername)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_MissingPassword() {
	ctx := context.Background()
	email := "nopass@example.com"
	req := dto.CreateUserRequest{Email: email}

	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(nil, apperrors.ErrNotFound).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.ErrorIs(err, apperrors.ErrMissingPassword)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_OAuthProviderWithoutPassword() {
	ctx := context.Background()
	email := "carol@example.com"
	providerID := "google-sub-1"
	req := dto.CreateUserRequest{
		Email:      email,
		Provider:   string(domain.ProviderGoogle),
		ProviderID: &providerID,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(nil, apperrors.ErrNotFound).Once()
	// Generated username from the email local part.
	suite.mockUserRepo.On("FindUserByUsername", ctx, "carol").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Provider == domain.ProviderGoogle && user.PasswordHash == nil &&
			user.Username != nil && *user.Username == "carol"
	})).Return(nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdUser)
	suite.Nil(createdUser.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_GeneratedUsernameCollision() {
	ctx := context.Background()
	email := "dave@example.com"
	password := "password123"
	req := dto.CreateUserRequest{Email: email, Password: &password}

	taken := &domain.User{UserID: uuid.NewString()}
	suite.mockUserRepo.On("FindUserByEmail", ctx, email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "dave").Return(taken, nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "dave1").Return(taken, nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "dave2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username != nil && *user.Username == "dave2"
	})).Return(nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdUser.Username)
	suite.Equal("dave2", *createdUser.Username)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- CreateOAuthUser Tests ---

func (suite *UserServiceTestSuite) TestCreateOAuthUser_ReturningUser() {
	ctx := context.Background()
	providerID := "google-sub-42"
	existing := &domain.User{
		UserID:     uuid.NewString(),
		Email:      "eve@example.com",
		Provider:   domain.ProviderGoogle,
		ProviderID: &providerID,
		IsActive:   true,
	}

	info := domain.OAuthUserInfo{
		Provider:   domain.ProviderGoogle,
		ProviderID: providerID,
		Email:      "eve@example.com",
		Name:       "Eve Changed",
	}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, providerID).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateLastLogin", ctx, existing.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.NotNil(user.LastLoginAt)
	// Fast path only touches last_login; the profile is not rewritten.
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_LinksExistingEmailAccount() {
	ctx := context.Background()
	hash := "$2a$10$existinghash"
	existing := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "frank@example.com",
		Username:     strPtr("frank"),
		PasswordHash: &hash,
		Provider:     domain.ProviderEmail,
		IsActive:     true,
	}

	info := domain.OAuthUserInfo{
		Provider:   domain.ProviderGoogle,
		ProviderID: "google-sub-7",
		Email:      "frank@example.com",
		Name:       "Frank G",
		AvatarURL:  "https://lh3.example.com/frank.png",
	}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, info.ProviderID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, info.Email).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == existing.UserID &&
			user.Provider == domain.ProviderGoogle &&
			user.ProviderID != nil && *user.ProviderID == info.ProviderID &&
			user.PasswordHash != nil && *user.PasswordHash == hash
	})).Return(nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, info)

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.Equal(domain.ProviderGoogle, user.Provider)
	suite.Require().NotNil(user.PasswordHash)
	suite.Equal(hash, *user.PasswordHash)
	suite.Require().NotNil(user.Name)
	suite.Equal("Frank G", *user.Name)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateOAuthUser_CreatesNewAccount() {
	ctx := context.Background()
	info := domain.OAuthUserInfo{
		Provider:      domain.ProviderGoogle,
		ProviderID:    "google-sub-9",
		Email:         "grace@example.com",
		Name:          "Grace",
		EmailVerified: true,
	}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, info.ProviderID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, info.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "grace").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == info.Email &&
			user.Provider == domain.ProviderGoogle &&
			user.ProviderID != nil && *user.ProviderID == info.ProviderID &&
			user.Username != nil && *user.Username == "grace" &&
			user.EmailVerified && user.IsActive &&
			user.PasswordHash == nil &&
			user.LastLoginAt != nil
	})).Return(nil).Once()

	user, err := suite.service.CreateOAuthUser(ctx, info)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.NotNil(user.LastLoginAt)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	password := "correcthorse"
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "heidi@example.com",
		PasswordHash: &hash,
		IsActive:     true,
	}

	suite.mockUserRepo.On("FindUserByIdentifier", ctx, "heidi@example.com").Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateLastLogin", ctx, user.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "heidi@example.com", password)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authed.UserID)
	suite.NotNil(authed.LastLoginAt)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownIdentifier() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByIdentifier", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "nobody", "whatever")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("rightpassword", bcrypt.MinCost)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), PasswordHash: &hash, IsActive: true}

	suite.mockUserRepo.On("FindUserByIdentifier", ctx, "ivan").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "ivan", "wrongpassword")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_NoPasswordHash() {
	ctx := context.Background()
	// OAuth-only account, no credential login possible.
	user := &domain.User{UserID: uuid.NewString(), Provider: domain.ProviderGoogle, IsActive: true}

	suite.mockUserRepo.On("FindUserByIdentifier", ctx, "judy@example.com").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "judy@example.com", "anything")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_InactiveAccount() {
	ctx := context.Background()
	password := "correcthorse"
	hash, err := utils.HashPassword(password, bcrypt.MinCost)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), PasswordHash: &hash, IsActive: false}

	suite.mockUserRepo.On("FindUserByIdentifier", ctx, "mallory").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "mallory", password)

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, apperrors.ErrInactiveAccount)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- ListUsers Tests ---

func (suite *UserServiceTestSuite) TestListUsers_Success() {
	ctx := context.Background()
	limit, offset := 10, 0
	expectedUsers := []domain.User{{UserID: uuid.NewString()}, {UserID: uuid.NewString()}}

	suite.mockUserRepo.On("FindUsers", ctx, limit, offset).Return(expectedUsers, nil).Once()

	users, err := suite.service.ListUsers(ctx, limit, offset)

	suite.Require().NoError(err)
	suite.Len(users, len(expectedUsers))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestListUsers_EmptyIsNotNil() {
	ctx := context.Background()
	limit, offset := 5, 10

	suite.mockUserRepo.On("FindUsers", ctx, limit, offset).Return(nil, nil).Once()

	users, err := suite.service.ListUsers(ctx, limit, offset)

	suite.Require().NoError(err)
	suite.Require().NotNil(users)
	suite.Empty(users)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateUser Tests ---

func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "Updated Name"
	req := dto.UpdateUserRequest{Name: &newName}
	originalUser := &domain.User{UserID: userID, Email: "x@example.com", Name: strPtr("Original Name")}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(originalUser, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.UserID == userID && user.Name != nil && *user.Name == newName
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user.Name)
	suite.Equal(newName, *user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_PasswordIsRehashed() {
	ctx := context.Background()
	userID := uuid.NewString()
	newPassword := "newsecret123"
	req := dto.UpdateUserRequest{Password: &newPassword}
	oldHash := "$2a$10$oldhash"
	originalUser := &domain.User{UserID: userID, Email: "x@example.com", PasswordHash: &oldHash}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(originalUser, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.PasswordHash != nil && *user.PasswordHash != oldHash && *user.PasswordHash != newPassword
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, req)

	suite.Require().NoError(err)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(newPassword)))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_DuplicateUsername() {
	ctx := context.Background()
	userID := uuid.NewString()
	newUsername := "taken"
	req := dto.UpdateUserRequest{Username: &newUsername}
	originalUser := &domain.User{UserID: userID, Username: strPtr("current")}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(originalUser, nil).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, newUsername).Return(&domain.User{UserID: uuid.NewString()}, nil).Once()

	user, err := suite.service.UpdateUser(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicateUsername)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	newName := "whatever"
	req := dto.UpdateUserRequest{Name: &newName}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.UpdateUser(ctx, userID, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- DeleteUser Tests ---

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time")).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteUser(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_RepoError() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time")).Return(expectedErr).Once()

	err := suite.service.DeleteUser(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
