package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/dto"
	"github.com/mentorlink/api/internal/validation"
)

// AuthService issues access tokens for users and mentors.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	LoginMentor(ctx context.Context, email, password string) (string, error)
}

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	authService AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Routes returns the login routes.
func (h *AuthHandler) Routes() []Route {
	return []Route{
		{
			Method: http.MethodPost, Path: "/auth/login", Tag: "auth",
			Summary:  "Log in as a platform user",
			Policy:   PolicyEnvelope,
			Status:   http.StatusOK,
			Message:  "login successful",
			Body:     dto.LoginRequest{},
			Response: dto.LoginResponse{},
			Action:   h.login,
			Fallback: "unable to authenticate",
		},
		{
			Method: http.MethodPost, Path: "/auth/mentor/login", Tag: "auth",
			Summary:  "Log in as a mentor",
			Policy:   PolicyEnvelope,
			Status:   http.StatusOK,
			Message:  "login successful",
			Body:     dto.LoginRequest{},
			Response: dto.LoginResponse{},
			Action:   h.loginMentor,
			Fallback: "unable to authenticate",
		},
	}
}

func (h *AuthHandler) login(c echo.Context) (any, error) {
	return authenticate(c, h.authService.Login)
}

func (h *AuthHandler) loginMentor(c echo.Context) (any, error) {
	return authenticate(c, h.authService.LoginMentor)
}

func authenticate(c echo.Context, login func(ctx context.Context, email, password string) (string, error)) (any, error) {
	req, err := validation.Body[dto.LoginRequest](c)
	if err != nil {
		return nil, err
	}
	token, err := login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return dto.LoginResponse{AccessToken: token}, nil
}
