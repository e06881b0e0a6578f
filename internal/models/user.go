package models

import (
	"time"
)

// User is the database shape of a user row.
// Nullable columns are pointers so scans can distinguish NULL from zero values.
type User struct {
	UserID        string     `json:"userID" db:"user_id"`
	Email         string     `json:"email" db:"email"`
	Username      *string    `json:"username" db:"username"`
	Name          *string    `json:"name" db:"name"`
	PasswordHash  *string    `json:"-" db:"hashed_password"`
	Provider      string     `json:"provider" db:"provider"`
	ProviderID    *string    `json:"providerID" db:"provider_id"`
	AvatarURL     *string    `json:"avatarURL" db:"avatar_url"`
	EmailVerified bool       `json:"emailVerified" db:"email_verified"`
	IsActive      bool       `json:"isActive" db:"is_active"`
	IsSuperuser   bool       `json:"isSuperuser" db:"is_superuser"`
	LastLoginAt   *time.Time `json:"lastLoginAt" db:"last_login"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt     *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}
