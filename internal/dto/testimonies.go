package dto

import "time"

// CreateTestimonyRequest captures a new testimony written by a platform user.
type CreateTestimonyRequest struct {
	UserName    string `json:"userName" validate:"required,max=120" jsonschema:"example=João Felipe"`
	Role        string `json:"role" validate:"omitempty,max=120" jsonschema:"example=Desenvolvedor júnior"`
	Description string `json:"description" validate:"required,max=2000" jsonschema:"example=A mentoria mudou minha carreira"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url" jsonschema:"example=https://example.com/joao.png"`
}

// UpdateTestimonyRequest captures partial testimony updates.
type UpdateTestimonyRequest struct {
	UserName    *string `json:"userName" validate:"omitempty,min=1,max=120"`
	Role        *string `json:"role" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,min=1,max=2000"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}

// GetTestimonyByParamRequest binds the composite testimony lookup key.
type GetTestimonyByParamRequest struct {
	ID       string `json:"id" validate:"required,hexuuid" jsonschema:"example=2046f12a-37b3-4d17-b210-8b604e632f7e"`
	UserName string `json:"userName" validate:"required" jsonschema:"example=João Felipe"`
}

// TestimonyIDRequest binds the :id route parameter of testimony routes.
type TestimonyIDRequest struct {
	ID string `json:"id" validate:"required,hexuuid" jsonschema:"example=2046f12a-37b3-4d17-b210-8b604e632f7e"`
}

// TestimonyResponse represents testimony data returned to clients.
type TestimonyResponse struct {
	ID          string    `json:"id"`
	UserName    string    `json:"userName"`
	Role        string    `json:"role,omitempty"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
