package dto

import (
	"time"

	"github.com/kshitijraj/authbot_app/internal/core/domain"
)

// UserResponse is the external shape of a user record. The password hash is
// never included.
type UserResponse struct {
	UserID        string     `json:"userID"`
	Email         string     `json:"email"`
	Username      string     `json:"username,omitempty"`
	Name          string     `json:"name,omitempty"`
	Provider      string     `json:"provider"`
	AvatarURL     string     `json:"avatarURL,omitempty"`
	EmailVerified bool       `json:"emailVerified"`
	IsActive      bool       `json:"isActive"`
	IsSuperuser   bool       `json:"isSuperuser"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ToUserResponse converts a domain User to its response DTO.
func ToUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		UserID:        user.UserID,
		Email:         user.Email,
		Username:      user.GetUsername(),
		Name:          user.GetName(),
		Provider:      string(user.Provider),
		EmailVerified: user.EmailVerified,
		IsActive:      user.IsActive,
		IsSuperuser:   user.IsSuperuser,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
	if user.AvatarURL != nil {
		resp.AvatarURL = *user.AvatarURL
	}
	return resp
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
