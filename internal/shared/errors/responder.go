package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Responder sends Problem responses.
type Responder struct {
	// Logger receives server-side failures (5xx). Nil disables logging.
	Logger *slog.Logger
}

// NewResponder creates a responder that logs server errors to logger.
func NewResponder(logger *slog.Logger) *Responder {
	return &Responder{Logger: logger}
}

// DefaultResponder logs nothing.
var DefaultResponder = NewResponder(nil)

// Respond writes the problem as {"error": message}.
func (r *Responder) Respond(c *gin.Context, problem Problem) {
	if problem.Status == 0 {
		problem.Status = http.StatusInternalServerError
	}
	if r.Logger != nil && problem.Status >= http.StatusInternalServerError {
		r.Logger.LogAttrs(c.Request.Context(), slog.LevelError, "request failed",
			slog.Int("status", problem.Status),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", problem.Message),
		)
	}
	c.JSON(problem.Status, problem)
}

// RespondError converts a standard error to a Problem and responds.
// It checks if the error is already a Problem, otherwise wraps it.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem Problem
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

// BadRequest sends a 400 response with the message verbatim.
func (r *Responder) BadRequest(c *gin.Context, message string) {
	r.Respond(c, ErrBadRequest.WithMessage(message))
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, problem Problem) {
	DefaultResponder.Respond(c, problem)
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// RespondData writes the success envelope {"message": ..., "data": ...}.
func RespondData(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Message: message, Data: data})
}

// ErrorMapper maps domain/application errors to Problem.
type ErrorMapper func(err error) (Problem, bool)

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with custom error mappers.
func NewChainedResponder(responder *Responder, mappers ...ErrorMapper) *ChainedResponder {
	if responder == nil {
		responder = DefaultResponder
	}
	return &ChainedResponder{
		Responder: responder,
		mappers:   mappers,
	}
}

// AddMapper adds an error mapper to the chain.
func (r *ChainedResponder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// RespondError tries each mapper before falling back to default handling.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}

// HTTPStatusFromError extracts HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var problem Problem
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}
