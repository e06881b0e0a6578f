package dto

// CreateUserRequest is the payload for credential registration.
// Username, name and password are optional; a missing username is generated
// from the email local part. Password is mandatory when provider is "email",
// enforced in the service layer rather than by binding tags.
type CreateUserRequest struct {
	Email         string  `json:"email" binding:"required,email"`
	Username      *string `json:"username,omitempty"`
	Name          *string `json:"name,omitempty"`
	Password      *string `json:"password,omitempty"`
	Provider      string  `json:"provider,omitempty" binding:"omitempty,authprovider"`
	ProviderID    *string `json:"provider_id,omitempty"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
	EmailVerified bool    `json:"email_verified,omitempty"`
}

// OAuthUserRequest is the payload delivered by an OAuth provider callback.
type OAuthUserRequest struct {
	Provider      string  `json:"provider" binding:"required,authprovider"`
	ProviderID    string  `json:"provider_id" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Name          *string `json:"name,omitempty"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
	EmailVerified bool    `json:"email_verified,omitempty"`
}

// LoginRequest carries email-or-username plus password.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the opaque refresh token string.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	AvatarURL *string `json:"avatar_url"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
