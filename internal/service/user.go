package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mentorlink/api/internal/auth"
	"github.com/mentorlink/api/internal/dto"
	"github.com/mentorlink/api/internal/entity"
	"github.com/mentorlink/api/internal/repository"
)

// ErrInvalidUserID is returned when the user id is not a UUID.
var ErrInvalidUserID = errors.New("invalid user id")

// UserService encapsulates registration and administrative operations for users.
type UserService struct {
	repo repository.UsersRepository
}

// NewUserService builds a new UserService instance.
func NewUserService(repo repository.UsersRepository) *UserService {
	return &UserService{repo: repo}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Email:     u.Email,
		Specialty: u.Specialty,
		Role:      u.Role,
	}
}

func toUserResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return responses
}

// ListUsers returns all users as DTOs.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// SearchUsers filters users by name fragment and specialty.
func (s *UserService) SearchUsers(ctx context.Context, req dto.SearchUserRequest) ([]dto.UserResponse, error) {
	users, err := s.repo.Search(ctx, req.FullName, req.Specialty)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// GetUser returns a single user.
func (s *UserService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidUserID
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// CreateUser registers a platform user with the default role.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" || req.Email == "" || req.Password == "" {
		return nil, errors.New("fullName, email and password are required")
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &entity.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hashed),
		Specialty:    strings.TrimSpace(req.Specialty),
		Role:         auth.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateUser mutates selected user fields.
func (s *UserService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidUserID
	}

	var patch repository.UserPatch
	if req.FullName != nil {
		trimmed := strings.TrimSpace(*req.FullName)
		if trimmed == "" {
			return nil, errors.New("fullName cannot be empty")
		}
		patch.FullName = &trimmed
	}
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return nil, errors.New("email cannot be empty")
		}
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		patch.Email = &email
	}
	if req.Specialty != nil {
		trimmed := strings.TrimSpace(*req.Specialty)
		patch.Specialty = &trimmed
	}
	if req.Role != nil {
		trimmed := strings.TrimSpace(*req.Role)
		if trimmed == "" {
			return nil, errors.New("role cannot be empty")
		}
		patch.Role = &trimmed
	}
	if req.Password != nil {
		if strings.TrimSpace(*req.Password) == "" {
			return nil, errors.New("password cannot be empty")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		pwd := string(hashed)
		patch.PasswordHash = &pwd
	}

	user, err := s.repo.Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidUserID
	}
	return s.repo.Delete(ctx, userID)
}
