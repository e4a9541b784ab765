package dto

import "time"

// CreateMentorRequest captures mentor self-registration payloads.
type CreateMentorRequest struct {
	FullName             string   `json:"fullName" validate:"required,max=120" jsonschema:"example=João Felipe"`
	Email                string   `json:"email" validate:"required,email" jsonschema:"example=joao@example.com"`
	Password             string   `json:"password" validate:"required,min=8,max=72" jsonschema:"example=Sup3rSecret!"`
	PasswordConfirmation string   `json:"passwordConfirmation" validate:"required,eqfield=Password" jsonschema:"example=Sup3rSecret!"`
	DateOfBirth          string   `json:"dateOfBirth" validate:"required,datetime=2006-01-02" jsonschema:"example=1990-05-17"`
	Specialties          []string `json:"specialties" validate:"omitempty,max=10,dive,required,max=60" jsonschema:"example=Backend"`
	Gender               string   `json:"gender" validate:"omitempty,max=40" jsonschema:"example=Homem"`
	AboutMe              string   `json:"aboutMe" validate:"omitempty,max=2000" jsonschema:"example=Mentor backend com 10 anos de experiência"`
}

// UpdateMentorRequest captures partial profile updates for the logged mentor.
type UpdateMentorRequest struct {
	FullName    *string  `json:"fullName" validate:"omitempty,min=1,max=120" jsonschema:"example=João Felipe"`
	DateOfBirth *string  `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02" jsonschema:"example=1990-05-17"`
	Specialties []string `json:"specialties" validate:"omitempty,max=10,dive,required,max=60" jsonschema:"example=Frontend"`
	Gender      *string  `json:"gender" validate:"omitempty,max=40" jsonschema:"example=Mulher"`
	AboutMe     *string  `json:"aboutMe" validate:"omitempty,max=2000" jsonschema:"example=Mentora de carreira"`
}

// SearchMentorRequest holds the mentor search filters, all optional.
type SearchMentorRequest struct {
	FullName    string   `json:"fullName" validate:"omitempty" jsonschema:"example=João"`
	Specialties []string `json:"specialties" validate:"omitempty,dive,required" jsonschema:"example=Backend"`
}

// GetByParamRequest binds the :id route parameter.
type GetByParamRequest struct {
	ID string `json:"id" validate:"required" jsonschema:"example=2046f12a-37b3-4d17-b210-8b604e632f7e"`
}

// ActiveMentorRequest carries the emailed activation or restoration code.
type ActiveMentorRequest struct {
	Email string `json:"email" validate:"required,email" jsonschema:"example=joao@example.com"`
	Code  string `json:"code" validate:"required" jsonschema:"example=5c1f0e4a-9b1d-4c39-8f60-1d8f0f3b7a21"`
}

// MentorPassConfirmationRequest holds the new password during account restoration.
type MentorPassConfirmationRequest struct {
	Password        string `json:"password" validate:"required,min=8,max=72" jsonschema:"example=N3wSecret!"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password" jsonschema:"example=N3wSecret!"`
}

// SearchByEmailRequest binds the :email route parameter.
type SearchByEmailRequest struct {
	Email string `json:"email" validate:"required,email" jsonschema:"example=joao@example.com"`
}

// MentorResponse represents mentor data returned to clients.
type MentorResponse struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	DateOfBirth     string    `json:"dateOfBirth"`
	Specialties     []string  `json:"specialties"`
	Gender          string    `json:"gender,omitempty"`
	AboutMe         string    `json:"aboutMe,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	EmailConfirmed  bool      `json:"emailConfirmed"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MessageResponse is the body of routes that only acknowledge an action.
type MessageResponse struct {
	Message string `json:"message"`
}
