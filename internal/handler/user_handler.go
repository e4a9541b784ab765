package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/auth"
	"github.com/mentorlink/api/internal/dto"
	"github.com/mentorlink/api/internal/validation"
)

// UserService manages platform users.
type UserService interface {
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	SearchUsers(ctx context.Context, req dto.SearchUserRequest) ([]dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserHandler exposes user registration, search and administrative endpoints.
type UserHandler struct {
	users UserService
}

// NewUserHandler constructs a handler instance.
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Routes returns the user route table.
func (h *UserHandler) Routes() []Route {
	admin := []string{auth.RoleAdmin}
	return []Route{
		{
			Method: http.MethodPost, Path: "/user", Tag: "user",
			Summary:  "Register a platform user",
			Policy:   PolicyEnvelope,
			Message:  "user created",
			Body:     dto.CreateUserRequest{},
			Response: dto.UserResponse{},
			Action:   h.create,
			Fallback: "unable to create user",
		},
		{
			Method: http.MethodGet, Path: "/user/search", Tag: "user",
			Summary:  "Search users by name and specialty",
			Policy:   PolicyEnvelope,
			Message:  "users retrieved",
			Query:    dto.SearchUserRequest{},
			Response: []dto.UserResponse{},
			Action:   h.search,
			Fallback: "failed to search users",
		},
		{
			Method: http.MethodGet, Path: "/user", Tag: "user",
			Summary:  "List every user",
			Policy:   PolicyEnvelope,
			Message:  "users retrieved",
			Roles:    admin,
			Response: []dto.UserResponse{},
			Action:   h.list,
			Fallback: "failed to list users",
		},
		{
			Method: http.MethodGet, Path: "/user/:id", Tag: "user",
			Summary:  "Get a user by id",
			Policy:   PolicyEnvelope,
			Message:  "user retrieved",
			Roles:    admin,
			Params:   dto.GetByParamRequest{},
			Response: dto.UserResponse{},
			Action:   h.get,
			Fallback: "failed to get user",
		},
		{
			Method: http.MethodPatch, Path: "/user/:id", Tag: "user",
			Summary:  "Update a user",
			Policy:   PolicyEnvelope,
			Message:  "user updated",
			Roles:    admin,
			Params:   dto.GetByParamRequest{},
			Body:     dto.UpdateUserRequest{},
			Response: dto.UserResponse{},
			Action:   h.update,
			Fallback: "failed to update user",
		},
		{
			Method: http.MethodDelete, Path: "/user/:id", Tag: "user",
			Summary:  "Delete a user",
			Policy:   PolicyEnvelope,
			Message:  "user deleted",
			Roles:    admin,
			Params:   dto.GetByParamRequest{},
			Action:   h.delete,
			Fallback: "failed to delete user",
		},
	}
}

func (h *UserHandler) create(c echo.Context) (any, error) {
	req, err := validation.Body[dto.CreateUserRequest](c)
	if err != nil {
		return nil, err
	}
	return h.users.CreateUser(c.Request().Context(), req)
}

func (h *UserHandler) search(c echo.Context) (any, error) {
	req, err := validation.Query[dto.SearchUserRequest](c)
	if err != nil {
		return nil, err
	}
	return h.users.SearchUsers(c.Request().Context(), req)
}

func (h *UserHandler) list(c echo.Context) (any, error) {
	return h.users.ListUsers(c.Request().Context())
}

func (h *UserHandler) get(c echo.Context) (any, error) {
	req, err := validation.Params[dto.GetByParamRequest](c)
	if err != nil {
		return nil, err
	}
	return h.users.GetUser(c.Request().Context(), req.ID)
}

func (h *UserHandler) update(c echo.Context) (any, error) {
	params, err := validation.Params[dto.GetByParamRequest](c)
	if err != nil {
		return nil, err
	}
	req, err := validation.Body[dto.UpdateUserRequest](c)
	if err != nil {
		return nil, err
	}
	return h.users.UpdateUser(c.Request().Context(), params.ID, req)
}

func (h *UserHandler) delete(c echo.Context) (any, error) {
	req, err := validation.Params[dto.GetByParamRequest](c)
	if err != nil {
		return nil, err
	}
	if err := h.users.DeleteUser(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
