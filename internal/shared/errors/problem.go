// Package errors renders API failures as {"error": message} and successes as
// {"message": ..., "data": ...}.
package errors

import (
	"fmt"
	"net/http"
)

// Problem is an HTTP failure carrying the status and the client-facing message.
type Problem struct {
	// Status is the HTTP status code for this occurrence.
	Status int `json:"-"`
	// Message is rendered as the "error" field of the body.
	Message string `json:"error"`
}

// NewProblem builds a problem with the given status and message.
func NewProblem(status int, message string) Problem {
	return Problem{Status: status, Message: message}
}

// Error implements the error interface.
func (p Problem) Error() string {
	return fmt.Sprintf("%d: %s", p.Status, p.Message)
}

// WithMessage returns a copy with the given message.
func (p Problem) WithMessage(message string) Problem {
	p.Message = message
	return p
}

// WithDetail returns a copy whose message is "<message>: <detail>".
func (p Problem) WithDetail(detail string) Problem {
	if detail != "" {
		p.Message = p.Message + ": " + detail
	}
	return p
}

// Pre-defined problems for common scenarios.
var (
	ErrBadRequest  = Problem{Status: http.StatusBadRequest, Message: "Bad Request"}
	ErrNotFound    = Problem{Status: http.StatusNotFound, Message: "Not Found"}
	ErrInternal    = Problem{Status: http.StatusInternalServerError, Message: "Internal Server Error"}
	ErrUnavailable = Problem{Status: http.StatusServiceUnavailable, Message: "Service Unavailable"}
)

// Envelope is the success body shared by every endpoint.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
