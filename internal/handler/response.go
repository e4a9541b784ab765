package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mentorlink/api/internal/service"
	"github.com/mentorlink/api/internal/validation"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  validation.Errors `json:"errors,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	return c.JSON(status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := APIResponse{
		Status:  "error",
		Message: message,
	}
	return c.JSON(status, payload)
}

// Invalid rejects a request whose input did not pass validation.
func Invalid(c echo.Context, err error) error {
	var violations validation.Errors
	if errors.As(err, &violations) {
		return c.JSON(http.StatusBadRequest, APIResponse{
			Status:  "error",
			Message: "validation failed",
			Errors:  violations,
		})
	}
	if errors.Is(err, validation.ErrMalformedBody) {
		return Error(c, http.StatusBadRequest, "malformed request body")
	}
	return Error(c, http.StatusBadRequest, "invalid request")
}

// Fail writes a business failure with its own status and message. Any other error becomes a 500
// with the fallback message.
func Fail(c echo.Context, err error, fallback string) error {
	var failure *service.Failure
	if errors.As(err, &failure) {
		return Error(c, failure.Status, failure.Message)
	}
	return Error(c, http.StatusInternalServerError, fallback)
}
