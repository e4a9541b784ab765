package entity

import (
	"time"

	"github.com/google/uuid"
)

// Testimony is a public statement about the platform written by a user.
type Testimony struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"user_name"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
