package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mentorlink/api/internal/dto"
	"github.com/mentorlink/api/internal/entity"
	"github.com/mentorlink/api/internal/repository"
)

// ErrInvalidTestimonyID is returned when the testimony id is not a UUID.
var ErrInvalidTestimonyID = errors.New("invalid testimony id")

// TestimonyService manages testimonies shown on the landing page.
type TestimonyService struct {
	repo repository.TestimoniesRepository
}

// NewTestimonyService builds a TestimonyService.
func NewTestimonyService(repo repository.TestimoniesRepository) *TestimonyService {
	return &TestimonyService{repo: repo}
}

func toTestimonyResponse(t *entity.Testimony) dto.TestimonyResponse {
	return dto.TestimonyResponse{
		ID:          t.ID.String(),
		UserName:    t.UserName,
		Role:        t.Role,
		Description: t.Description,
		ImageURL:    t.ImageURL,
		CreatedAt:   t.CreatedAt,
	}
}

// CreateTestimony stores a new testimony.
func (s *TestimonyService) CreateTestimony(ctx context.Context, req dto.CreateTestimonyRequest) (*dto.TestimonyResponse, error) {
	testimony, err := s.repo.Create(ctx, &entity.Testimony{
		UserName:    strings.TrimSpace(req.UserName),
		Role:        strings.TrimSpace(req.Role),
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
	})
	if err != nil {
		return nil, err
	}
	resp := toTestimonyResponse(testimony)
	return &resp, nil
}

// ListTestimonies returns every testimony, newest first.
func (s *TestimonyService) ListTestimonies(ctx context.Context) ([]dto.TestimonyResponse, error) {
	testimonies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.TestimonyResponse, 0, len(testimonies))
	for i := range testimonies {
		responses = append(responses, toTestimonyResponse(&testimonies[i]))
	}
	return responses, nil
}

// GetTestimony returns the testimony matching both the id and the author name.
func (s *TestimonyService) GetTestimony(ctx context.Context, req dto.GetTestimonyByParamRequest) (*dto.TestimonyResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, ErrInvalidTestimonyID
	}
	testimony, err := s.repo.FindByIDAndUserName(ctx, id, req.UserName)
	if err != nil {
		return nil, err
	}
	resp := toTestimonyResponse(testimony)
	return &resp, nil
}

// UpdateTestimony applies a partial update.
func (s *TestimonyService) UpdateTestimony(ctx context.Context, id string, req dto.UpdateTestimonyRequest) (*dto.TestimonyResponse, error) {
	testimonyID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidTestimonyID
	}

	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		trimmed := strings.TrimSpace(*v)
		return &trimmed
	}
	testimony, err := s.repo.Update(ctx, testimonyID, repository.TestimonyPatch{
		UserName:    trim(req.UserName),
		Role:        trim(req.Role),
		Description: trim(req.Description),
		ImageURL:    trim(req.ImageURL),
	})
	if err != nil {
		return nil, err
	}
	resp := toTestimonyResponse(testimony)
	return &resp, nil
}

// DeleteTestimony removes a testimony by id.
func (s *TestimonyService) DeleteTestimony(ctx context.Context, id string) error {
	testimonyID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidTestimonyID
	}
	return s.repo.Delete(ctx, testimonyID)
}
