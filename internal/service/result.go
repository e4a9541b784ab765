package service

import "net/http"

// Result is a business outcome that carries its own HTTP status.
type Result struct {
	Status int `json:"status"`
	Data   any `json:"data"`
}

// Failure is a business rejection with the status and message to report to the client.
type Failure struct {
	Status  int
	Message string
}

func (f *Failure) Error() string { return f.Message }

func fail(status int, message string) *Failure {
	return &Failure{Status: status, Message: message}
}

var (
	errMentorNotFound = fail(http.StatusNotFound, "mentor not found")
	errInvalidCode    = fail(http.StatusBadRequest, "invalid code")
)
