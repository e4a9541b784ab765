package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/auth"
	"github.com/mentorlink/api/internal/dto"
	"github.com/mentorlink/api/internal/service"
)

var errNotImplemented = errors.New("not implemented")

type stubMentorService struct {
	create       func(ctx context.Context, req dto.CreateMentorRequest) (*dto.MentorResponse, error)
	list         func(ctx context.Context) ([]dto.MentorResponse, error)
	search       func(ctx context.Context, req dto.SearchMentorRequest, specialty string) ([]dto.MentorResponse, error)
	findByID     func(ctx context.Context, id string) (service.Result, error)
	update       func(ctx context.Context, id string, req dto.UpdateMentorRequest) (*dto.MentorResponse, error)
	upload       func(ctx context.Context, principal auth.Principal, file service.Upload) (*dto.MentorResponse, error)
	activate     func(ctx context.Context, req dto.ActiveMentorRequest) (service.Result, error)
	deactivate   func(ctx context.Context, id string) (*dto.MentorResponse, error)
	sendRestore  func(ctx context.Context, email string) (*dto.MessageResponse, error)
	redefinePass func(ctx context.Context, query dto.ActiveMentorRequest, body dto.MentorPassConfirmationRequest) (*dto.MessageResponse, error)
}

func (s *stubMentorService) CreateMentor(ctx context.Context, req dto.CreateMentorRequest) (*dto.MentorResponse, error) {
	if s.create != nil {
		return s.create(ctx, req)
	}
	return nil, errNotImplemented
}

func (s *stubMentorService) GetAllMentors(ctx context.Context) ([]dto.MentorResponse, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, errNotImplemented
}

func (s *stubMentorService) FindMentorByNameAndRole(ctx context.Context, req dto.SearchMentorRequest, specialty string) ([]dto.MentorResponse, error) {
	if s.search != nil {
		return s.search(ctx, req, specialty)
	}
	return nil, errNotImplemented
}

func (s *stubMentorService) FindMentorByID(ctx context.Context, id string) (service.Result, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return service.Result{}, errNotImplemented
}

func (s *stubMentorService) UpdateMentor(ctx context.Context, id string, req dto.UpdateMentorRequest) (*dto.MentorResponse, error) {
	if s.update != nil {
		return s.update(ctx, id, req)
	}
	return nil, errNotImplemented
}

func (s *stubMentorService) UploadProfileImage(ctx context.Context, principal auth.Principal, file service.Upload) (*dto.MentorResponse, error) {
	if s.upload != nil {
		return s.upload(ctx, principal, file)
	}
	return nil, errNotImplemented
}

func (s *stubMentorService) ActiveMentor(ctx context.Context, req dto.ActiveMentorRequest) (service.Result, error) {
	if s.activate != nil {
		return s.activate(ctx, req)
	}
	return service.Result{}, errNotImplemented
}

func (s *stubMentorService) DesactivateLoggedMentor(ctx context.Context, id string) (*dto.MentorResponse, error) {
	if s.deactivate != nil {
		return s.deactivate(ctx, id)
	}
	return nil, errNotImplemented
}

func (s *stubMentorService) SendRestorationEmail(ctx context.Context, email string) (*dto.MessageResponse, error) {
	if s.sendRestore != nil {
		return s.sendRestore(ctx, email)
	}
	return nil, errNotImplemented
}

func (s *stubMentorService) RedefineMentorPassword(ctx context.Context, query dto.ActiveMentorRequest, body dto.MentorPassConfirmationRequest) (*dto.MessageResponse, error) {
	if s.redefinePass != nil {
		return s.redefinePass(ctx, query, body)
	}
	return nil, errNotImplemented
}

type stubAuthService struct {
	login       func(ctx context.Context, email, password string) (string, error)
	loginMentor func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.login != nil {
		return s.login(ctx, email, password)
	}
	return "", errNotImplemented
}

func (s *stubAuthService) LoginMentor(ctx context.Context, email, password string) (string, error) {
	if s.loginMentor != nil {
		return s.loginMentor(ctx, email, password)
	}
	return "", errNotImplemented
}

type stubUserService struct {
	list   func(ctx context.Context) ([]dto.UserResponse, error)
	search func(ctx context.Context, req dto.SearchUserRequest) ([]dto.UserResponse, error)
	get    func(ctx context.Context, id string) (*dto.UserResponse, error)
	create func(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	update func(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	delete func(ctx context.Context, id string) error
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, errNotImplemented
}

func (s *stubUserService) SearchUsers(ctx context.Context, req dto.SearchUserRequest) ([]dto.UserResponse, error) {
	if s.search != nil {
		return s.search(ctx, req)
	}
	return nil, errNotImplemented
}

func (s *stubUserService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return nil, errNotImplemented
}

func (s *stubUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if s.create != nil {
		return s.create(ctx, req)
	}
	return nil, errNotImplemented
}

func (s *stubUserService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if s.update != nil {
		return s.update(ctx, id, req)
	}
	return nil, errNotImplemented
}

func (s *stubUserService) DeleteUser(ctx context.Context, id string) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return errNotImplemented
}

type stubTestimonyService struct {
	create func(ctx context.Context, req dto.CreateTestimonyRequest) (*dto.TestimonyResponse, error)
	list   func(ctx context.Context) ([]dto.TestimonyResponse, error)
	get    func(ctx context.Context, req dto.GetTestimonyByParamRequest) (*dto.TestimonyResponse, error)
	update func(ctx context.Context, id string, req dto.UpdateTestimonyRequest) (*dto.TestimonyResponse, error)
	delete func(ctx context.Context, id string) error
}

func (s *stubTestimonyService) CreateTestimony(ctx context.Context, req dto.CreateTestimonyRequest) (*dto.TestimonyResponse, error) {
	if s.create != nil {
		return s.create(ctx, req)
	}
	return nil, errNotImplemented
}

func (s *stubTestimonyService) ListTestimonies(ctx context.Context) ([]dto.TestimonyResponse, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, errNotImplemented
}

func (s *stubTestimonyService) GetTestimony(ctx context.Context, req dto.GetTestimonyByParamRequest) (*dto.TestimonyResponse, error) {
	if s.get != nil {
		return s.get(ctx, req)
	}
	return nil, errNotImplemented
}

func (s *stubTestimonyService) UpdateTestimony(ctx context.Context, id string, req dto.UpdateTestimonyRequest) (*dto.TestimonyResponse, error) {
	if s.update != nil {
		return s.update(ctx, id, req)
	}
	return nil, errNotImplemented
}

func (s *stubTestimonyService) DeleteTestimony(ctx context.Context, id string) error {
	if s.delete != nil {
		return s.delete(ctx, id)
	}
	return errNotImplemented
}

// serve registers routes on a fresh echo instance without middleware and runs one request.
func serve(routes []Route, method, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	for _, route := range routes {
		e.Add(route.Method, route.Path, route.Handle())
	}

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
