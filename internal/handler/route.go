package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/repository"
	"github.com/mentorlink/api/internal/service"
	"github.com/mentorlink/api/internal/validation"
)

// Policy decides how a route turns a business outcome into an HTTP response.
type Policy int

const (
	// PolicyDefault writes the returned value as the body with 201 for POST and 200 otherwise.
	PolicyDefault Policy = iota
	// PolicyStatus writes the returned value with the route's Status.
	PolicyStatus
	// PolicyForward expects a service.Result and replies with its Status and its Data as the body.
	PolicyForward
	// PolicyEnvelope wraps the returned value in the success envelope.
	PolicyEnvelope
)

// Action runs the business call behind a route and returns the value to respond with.
type Action func(c echo.Context) (any, error)

// Route describes one endpoint. The router registers it and the docs layer documents it from the
// same value.
type Route struct {
	Method  string
	Path    string
	Summary string
	Tag     string

	Policy  Policy
	Status  int
	Message string

	// Roles guards the route behind a bearer token carrying one of the roles.
	Roles []string
	// Upload names the multipart field read by the upload interceptor.
	Upload      string
	RateLimited bool
	Hidden      bool

	// Query, Params and Body are zero values of the request shapes, used for docs.
	Query    any
	Params   any
	Body     any
	Response any

	Action   Action
	Fallback string
	// Serve, when set, writes the response itself and replaces Action.
	Serve echo.HandlerFunc
}

// Handle adapts the route's action into an echo handler applying its response policy.
func (r Route) Handle() echo.HandlerFunc {
	if r.Serve != nil {
		return r.Serve
	}
	return func(c echo.Context) error {
		out, err := r.Action(c)
		if err != nil {
			return r.fail(c, err)
		}

		switch r.Policy {
		case PolicyForward:
			res, ok := out.(service.Result)
			if !ok || res.Status == 0 {
				return Error(c, http.StatusInternalServerError, r.fallback())
			}
			return c.JSON(res.Status, res.Data)
		case PolicyStatus:
			return c.JSON(r.Status, out)
		case PolicyEnvelope:
			return Success(c, r.SuccessStatus(), r.Message, out)
		default:
			return c.JSON(r.SuccessStatus(), out)
		}
	}
}

// SuccessStatus is the status written when the action succeeds.
func (r Route) SuccessStatus() int {
	if r.Status != 0 {
		return r.Status
	}
	if r.Method == http.MethodPost {
		return http.StatusCreated
	}
	return http.StatusOK
}

// Guarded reports whether the route requires a bearer token.
func (r Route) Guarded() bool {
	return len(r.Roles) > 0
}

var errorStatuses = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{service.ErrInvalidUserID, http.StatusBadRequest, "invalid user id"},
	{service.ErrInvalidTestimonyID, http.StatusBadRequest, "invalid testimony id"},
	{repository.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{repository.ErrEmailDuplicate, http.StatusConflict, "email already exists"},
	{repository.ErrMentorNotFound, http.StatusNotFound, "mentor not found"},
	{repository.ErrMentorEmailDuplicate, http.StatusConflict, "email already exists"},
	{repository.ErrTestimonyNotFound, http.StatusNotFound, "testimony not found"},
}

func (r Route) fail(c echo.Context, err error) error {
	var violations validation.Errors
	if errors.As(err, &violations) || errors.Is(err, validation.ErrMalformedBody) {
		return Invalid(c, err)
	}
	for _, known := range errorStatuses {
		if errors.Is(err, known.err) {
			return Error(c, known.status, known.message)
		}
	}

	return Fail(c, err, r.fallback())
}

func (r Route) fallback() string {
	if r.Fallback == "" {
		return "internal server error"
	}
	return r.Fallback
}
