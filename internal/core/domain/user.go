package domain

import "time"

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	ProviderEmail    AuthProvider = "email"
	ProviderGoogle   AuthProvider = "google"
	ProviderFacebook AuthProvider = "facebook"
)

// User represents a user account in the domain.
// Accounts created via OAuth have no password hash; accounts created with the
// email provider always do. Provider and ProviderID migrate to the most recent
// login method on account linking (single provider per user).
type User struct {
	UserID        string       `json:"userID"` // Primary Key (UUID)
	Email         string       `json:"email"`
	Username      *string      `json:"username,omitempty"` // Optional until resolved for OAuth users
	Name          *string      `json:"name,omitempty"`
	PasswordHash  *string      `json:"-"`
	Provider      AuthProvider `json:"provider"`
	ProviderID    *string      `json:"providerID,omitempty"`
	AvatarURL     *string      `json:"avatarURL,omitempty"`
	EmailVerified bool         `json:"emailVerified"`
	IsActive      bool         `json:"isActive"`
	IsSuperuser   bool         `json:"isSuperuser"`
	LastLoginAt   *time.Time   `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	DeletedAt     *time.Time   `json:"deletedAt,omitempty"` // Used for soft delete
}

// GetUserID implements the accessor interface used by response mapping.
func (u *User) GetUserID() string { return u.UserID }

// GetUsername returns the username or an empty string when unresolved.
func (u *User) GetUsername() string {
	if u.Username == nil {
		return ""
	}
	return *u.Username
}

// GetName returns the display name or an empty string.
func (u *User) GetName() string {
	if u.Name == nil {
		return ""
	}
	return *u.Name
}

// OAuthUserInfo carries the identity asserted by an OAuth provider callback.
type OAuthUserInfo struct {
	Provider      AuthProvider
	ProviderID    string
	Email         string
	Name          string
	AvatarURL     string
	EmailVerified bool
}

// GoogleUserInfo is the shape of Google's userinfo endpoint response.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
