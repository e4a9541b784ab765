package entity

import (
	"time"

	"github.com/google/uuid"
)

// Mentor represents a mentor account and its public profile.
type Mentor struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	DateOfBirth     time.Time `json:"date_of_birth"`
	Specialties     []string  `json:"specialties"`
	Gender          string    `json:"gender"`
	AboutMe         string    `json:"about_me"`
	ProfileImageURL string    `json:"profile_image_url"`
	EmailConfirmed  bool      `json:"email_confirmed"`
	Active          bool      `json:"active"`
	Code            string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
