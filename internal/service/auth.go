package service

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mentorlink/api/internal/auth"
	"github.com/mentorlink/api/internal/repository"
)

// ErrInvalidCredentials is returned when the email or password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService coordinates credential validation and token issuance.
type AuthService struct {
	users   repository.UsersRepository
	mentors repository.MentorsRepository
	jwt     *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, mentors repository.MentorsRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{users: users, mentors: mentors, jwt: jwtManager}
}

// Login validates platform user credentials and returns a JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errors.New("email and password must not be empty")
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.jwt.GenerateToken(user.ID.String(), user.Email, user.Role)
}

// LoginMentor validates mentor credentials. Mentors must have confirmed their email and be active.
func (s *AuthService) LoginMentor(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", errors.New("email and password must not be empty")
	}
	normalized, err := normalizeEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	mentor, err := s.mentors.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrMentorNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(mentor.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	if !mentor.EmailConfirmed {
		return "", fail(http.StatusForbidden, "email not confirmed")
	}
	if !mentor.Active {
		return "", fail(http.StatusForbidden, "account is inactive")
	}

	return s.jwt.GenerateToken(mentor.ID.String(), mentor.Email, auth.RoleMentor)
}
