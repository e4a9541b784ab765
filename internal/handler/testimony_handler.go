package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/auth"
	"github.com/mentorlink/api/internal/dto"
	"github.com/mentorlink/api/internal/validation"
)

// TestimonyService manages the testimonies shown on the platform.
type TestimonyService interface {
	CreateTestimony(ctx context.Context, req dto.CreateTestimonyRequest) (*dto.TestimonyResponse, error)
	ListTestimonies(ctx context.Context) ([]dto.TestimonyResponse, error)
	GetTestimony(ctx context.Context, req dto.GetTestimonyByParamRequest) (*dto.TestimonyResponse, error)
	UpdateTestimony(ctx context.Context, id string, req dto.UpdateTestimonyRequest) (*dto.TestimonyResponse, error)
	DeleteTestimony(ctx context.Context, id string) error
}

// TestimonyHandler exposes the testimony endpoints.
type TestimonyHandler struct {
	testimonies TestimonyService
}

// NewTestimonyHandler constructs a TestimonyHandler.
func NewTestimonyHandler(testimonies TestimonyService) *TestimonyHandler {
	return &TestimonyHandler{testimonies: testimonies}
}

// Routes returns the testimony route table.
func (h *TestimonyHandler) Routes() []Route {
	admin := []string{auth.RoleAdmin}
	return []Route{
		{
			Method: http.MethodGet, Path: "/testimony", Tag: "testimony",
			Summary:  "List testimonies",
			Response: []dto.TestimonyResponse{},
			Action:   h.list,
			Fallback: "unable to list testimonies",
		},
		{
			Method: http.MethodGet, Path: "/testimony/:id/:userName", Tag: "testimony",
			Summary:  "Find a testimony by id and author",
			Params:   dto.GetTestimonyByParamRequest{},
			Response: dto.TestimonyResponse{},
			Action:   h.get,
			Fallback: "unable to find testimony",
		},
		{
			Method: http.MethodPost, Path: "/testimony", Tag: "testimony",
			Summary:  "Create a testimony",
			Roles:    admin,
			Body:     dto.CreateTestimonyRequest{},
			Response: dto.TestimonyResponse{},
			Action:   h.create,
			Fallback: "unable to create testimony",
		},
		{
			Method: http.MethodPut, Path: "/testimony/:id", Tag: "testimony",
			Summary:  "Update a testimony",
			Roles:    admin,
			Params:   dto.TestimonyIDRequest{},
			Body:     dto.UpdateTestimonyRequest{},
			Response: dto.TestimonyResponse{},
			Action:   h.update,
			Fallback: "unable to update testimony",
		},
		{
			Method: http.MethodDelete, Path: "/testimony/:id", Tag: "testimony",
			Summary:  "Delete a testimony",
			Roles:    admin,
			Params:   dto.TestimonyIDRequest{},
			Response: dto.MessageResponse{},
			Action:   h.delete,
			Fallback: "unable to delete testimony",
		},
	}
}

func (h *TestimonyHandler) list(c echo.Context) (any, error) {
	return h.testimonies.ListTestimonies(c.Request().Context())
}

func (h *TestimonyHandler) get(c echo.Context) (any, error) {
	req, err := validation.Params[dto.GetTestimonyByParamRequest](c)
	if err != nil {
		return nil, err
	}
	return h.testimonies.GetTestimony(c.Request().Context(), req)
}

func (h *TestimonyHandler) create(c echo.Context) (any, error) {
	req, err := validation.Body[dto.CreateTestimonyRequest](c)
	if err != nil {
		return nil, err
	}
	return h.testimonies.CreateTestimony(c.Request().Context(), req)
}

func (h *TestimonyHandler) update(c echo.Context) (any, error) {
	params, err := validation.Params[dto.TestimonyIDRequest](c)
	if err != nil {
		return nil, err
	}
	req, err := validation.Body[dto.UpdateTestimonyRequest](c)
	if err != nil {
		return nil, err
	}
	return h.testimonies.UpdateTestimony(c.Request().Context(), params.ID, req)
}

func (h *TestimonyHandler) delete(c echo.Context) (any, error) {
	req, err := validation.Params[dto.TestimonyIDRequest](c)
	if err != nil {
		return nil, err
	}
	if err := h.testimonies.DeleteTestimony(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return dto.MessageResponse{Message: "testimony deleted"}, nil
}
