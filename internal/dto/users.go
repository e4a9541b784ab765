package dto

// CreateUserRequest captures platform user registration payloads.
type CreateUserRequest struct {
	FullName  string `json:"fullName" validate:"required,max=120" jsonschema:"example=Maria Souza"`
	Email     string `json:"email" validate:"required,email" jsonschema:"example=maria@example.com"`
	Password  string `json:"password" validate:"required,min=8,max=72" jsonschema:"example=Sup3rSecret!"`
	Specialty string `json:"specialty" validate:"omitempty,max=60" jsonschema:"example=Mentor backend"`
}

// UpdateUserRequest captures administrator-triggered partial updates.
type UpdateUserRequest struct {
	FullName  *string `json:"fullName,omitempty" validate:"omitempty,min=1,max=120"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Specialty *string `json:"specialty,omitempty" validate:"omitempty,max=60"`
	Role      *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// SearchUserRequest holds the user search filters, both optional.
type SearchUserRequest struct {
	FullName  string `json:"fullName" validate:"omitempty" jsonschema:"example=João Felipe"`
	Specialty string `json:"specialty" validate:"omitempty" jsonschema:"example=Mentor backend"`
}

// UserResponse represents user data returned to clients.
type UserResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Specialty string `json:"specialty,omitempty"`
	Role      string `json:"role"`
}
