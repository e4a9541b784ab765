package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/auth"
	"github.com/mentorlink/api/internal/dto"
	"github.com/mentorlink/api/internal/middleware"
	"github.com/mentorlink/api/internal/service"
	"github.com/mentorlink/api/internal/validation"
)

// MentorService is the business layer behind the mentor routes.
type MentorService interface {
	CreateMentor(ctx context.Context, req dto.CreateMentorRequest) (*dto.MentorResponse, error)
	GetAllMentors(ctx context.Context) ([]dto.MentorResponse, error)
	FindMentorByNameAndRole(ctx context.Context, req dto.SearchMentorRequest, specialty string) ([]dto.MentorResponse, error)
	FindMentorByID(ctx context.Context, id string) (service.Result, error)
	UpdateMentor(ctx context.Context, id string, req dto.UpdateMentorRequest) (*dto.MentorResponse, error)
	UploadProfileImage(ctx context.Context, principal auth.Principal, file service.Upload) (*dto.MentorResponse, error)
	ActiveMentor(ctx context.Context, req dto.ActiveMentorRequest) (service.Result, error)
	DesactivateLoggedMentor(ctx context.Context, id string) (*dto.MentorResponse, error)
	SendRestorationEmail(ctx context.Context, email string) (*dto.MessageResponse, error)
	RedefineMentorPassword(ctx context.Context, query dto.ActiveMentorRequest, body dto.MentorPassConfirmationRequest) (*dto.MessageResponse, error)
}

// MentorHandler exposes the mentor endpoints.
type MentorHandler struct {
	mentors MentorService
}

// NewMentorHandler constructs a MentorHandler.
func NewMentorHandler(mentors MentorService) *MentorHandler {
	return &MentorHandler{mentors: mentors}
}

var errNoPrincipal = &service.Failure{Status: http.StatusUnauthorized, Message: "missing bearer token"}

func principal(c echo.Context) (auth.Principal, error) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return auth.Principal{}, errNoPrincipal
	}
	return p, nil
}

// Routes returns the mentor route table.
func (h *MentorHandler) Routes() []Route {
	return []Route{
		{
			Method: http.MethodPost, Path: "/mentor", Tag: "mentor",
			Summary:  "Register a mentor and email the activation link",
			Body:     dto.CreateMentorRequest{},
			Response: dto.MentorResponse{},
			Action:   h.create,
			Fallback: "unable to create mentor",
		},
		{
			Method: http.MethodGet, Path: "/mentor", Tag: "mentor",
			Summary:  "List every active mentor",
			Hidden:   true,
			Response: []dto.MentorResponse{},
			Action:   h.list,
			Fallback: "unable to list mentors",
		},
		{
			Method: http.MethodGet, Path: "/mentor/search", Tag: "mentor",
			Summary:  "Search mentors by name and specialties",
			Policy:   PolicyStatus,
			Status:   http.StatusOK,
			Query:    dto.SearchMentorRequest{},
			Response: []dto.MentorResponse{},
			Action:   h.search,
			Fallback: "unable to search mentors",
		},
		{
			Method: http.MethodGet, Path: "/mentor/:id", Tag: "mentor",
			Summary:  "Find a mentor by id",
			Policy:   PolicyForward,
			Params:   dto.GetByParamRequest{},
			Response: dto.MentorResponse{},
			Action:   h.findByID,
			Fallback: "unable to find mentor",
		},
		{
			Method: http.MethodPut, Path: "/mentor/:id", Tag: "mentor",
			Summary:  "Update the logged mentor's profile",
			Roles:    []string{auth.RoleMentor},
			Body:     dto.UpdateMentorRequest{},
			Response: dto.MentorResponse{},
			Action:   h.update,
			Fallback: "unable to update mentor",
		},
		{
			Method: http.MethodPost, Path: "/mentor/uploadProfileImage", Tag: "mentor",
			Summary:  "Upload the logged mentor's profile image",
			Roles:    []string{auth.RoleMentor},
			Upload:   "file",
			Response: dto.MentorResponse{},
			Action:   h.uploadProfileImage,
			Fallback: "unable to upload profile image",
		},
		{
			Method: http.MethodPatch, Path: "/mentor/active", Tag: "mentor",
			Summary:  "Confirm a mentor's email with the activation code",
			Policy:   PolicyForward,
			Query:    dto.ActiveMentorRequest{},
			Response: dto.MessageResponse{},
			Action:   h.activate,
			Fallback: "unable to activate mentor",
		},
		{
			Method: http.MethodPatch, Path: "/mentor/:id", Tag: "mentor",
			Summary:  "Deactivate a mentor",
			Hidden:   true,
			Params:   dto.GetByParamRequest{},
			Response: dto.MentorResponse{},
			Action:   h.deactivate,
			Fallback: "unable to deactivate mentor",
		},
		{
			Method: http.MethodPost, Path: "/mentor/restoreAccount/:email", Tag: "mentor",
			Summary:     "Email a password restoration link",
			RateLimited: true,
			Params:      dto.SearchByEmailRequest{},
			Response:    dto.MessageResponse{},
			Action:      h.sendRestoration,
			Fallback:    "unable to send restoration email",
		},
		{
			Method: http.MethodPatch, Path: "/mentor/restoreAccount/redefinePass", Tag: "mentor",
			Summary:  "Set a new password with the restoration code",
			Query:    dto.ActiveMentorRequest{},
			Body:     dto.MentorPassConfirmationRequest{},
			Response: dto.MessageResponse{},
			Action:   h.redefinePassword,
			Fallback: "unable to redefine password",
		},
	}
}

func (h *MentorHandler) create(c echo.Context) (any, error) {
	req, err := validation.Body[dto.CreateMentorRequest](c)
	if err != nil {
		return nil, err
	}
	return h.mentors.CreateMentor(c.Request().Context(), req)
}

func (h *MentorHandler) list(c echo.Context) (any, error) {
	return h.mentors.GetAllMentors(c.Request().Context())
}

func (h *MentorHandler) search(c echo.Context) (any, error) {
	req, err := validation.Query[dto.SearchMentorRequest](c)
	if err != nil {
		return nil, err
	}
	return h.mentors.FindMentorByNameAndRole(c.Request().Context(), req, c.QueryParam("specialty"))
}

func (h *MentorHandler) findByID(c echo.Context) (any, error) {
	req, err := validation.Params[dto.GetByParamRequest](c)
	if err != nil {
		return nil, err
	}
	return h.mentors.FindMentorByID(c.Request().Context(), req.ID)
}

// update ignores the path id: mentors can only edit their own profile.
func (h *MentorHandler) update(c echo.Context) (any, error) {
	p, err := principal(c)
	if err != nil {
		return nil, err
	}
	req, err := validation.Body[dto.UpdateMentorRequest](c)
	if err != nil {
		return nil, err
	}
	return h.mentors.UpdateMentor(c.Request().Context(), p.ID, req)
}

func (h *MentorHandler) uploadProfileImage(c echo.Context) (any, error) {
	p, err := principal(c)
	if err != nil {
		return nil, err
	}
	file, ok := middleware.UploadFromContext(c)
	if !ok {
		return nil, &service.Failure{Status: http.StatusBadRequest, Message: "missing file"}
	}
	return h.mentors.UploadProfileImage(c.Request().Context(), p, service.Upload{
		Name:        file.Name,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
}

func (h *MentorHandler) activate(c echo.Context) (any, error) {
	req, err := validation.Query[dto.ActiveMentorRequest](c)
	if err != nil {
		return nil, err
	}
	return h.mentors.ActiveMentor(c.Request().Context(), req)
}

func (h *MentorHandler) deactivate(c echo.Context) (any, error) {
	req, err := validation.Params[dto.GetByParamRequest](c)
	if err != nil {
		return nil, err
	}
	return h.mentors.DesactivateLoggedMentor(c.Request().Context(), req.ID)
}

func (h *MentorHandler) sendRestoration(c echo.Context) (any, error) {
	req, err := validation.Params[dto.SearchByEmailRequest](c)
	if err != nil {
		return nil, err
	}
	return h.mentors.SendRestorationEmail(c.Request().Context(), req.Email)
}

func (h *MentorHandler) redefinePassword(c echo.Context) (any, error) {
	query, err := validation.Query[dto.ActiveMentorRequest](c)
	if err != nil {
		return nil, err
	}
	body, err := validation.Body[dto.MentorPassConfirmationRequest](c)
	if err != nil {
		return nil, err
	}
	return h.mentors.RedefineMentorPassword(c.Request().Context(), query, body)
}
