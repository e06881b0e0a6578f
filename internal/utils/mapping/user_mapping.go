package mapping

import (
	"github.com/kshitijraj/authbot_app/internal/core/domain"
	"github.com/kshitijraj/authbot_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:        d.UserID,
		Email:         d.Email,
		Username:      d.Username,
		Name:          d.Name,
		PasswordHash:  d.PasswordHash,
		Provider:      string(d.Provider),
		ProviderID:    d.ProviderID,
		AvatarURL:     d.AvatarURL,
		EmailVerified: d.EmailVerified,
		IsActive:      d.IsActive,
		IsSuperuser:   d.IsSuperuser,
		LastLoginAt:   d.LastLoginAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		DeletedAt:     d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:        m.UserID,
		Email:         m.Email,
		Username:      m.Username,
		Name:          m.Name,
		PasswordHash:  m.PasswordHash,
		Provider:      domain.AuthProvider(m.Provider),
		ProviderID:    m.ProviderID,
		AvatarURL:     m.AvatarURL,
		EmailVerified: m.EmailVerified,
		IsActive:      m.IsActive,
		IsSuperuser:   m.IsSuperuser,
		LastLoginAt:   m.LastLoginAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     m.DeletedAt,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
