package dto

// LoginRequest captures credential input.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" jsonschema:"example=joao@example.com"`
	Password string `json:"password" validate:"required" jsonschema:"example=Sup3rSecret!"`
}

// LoginResponse contains the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
