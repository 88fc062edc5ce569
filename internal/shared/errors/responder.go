package errors

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// UnexpectedErrorDetail is the only detail exposed for failures no mapper recognises.
const UnexpectedErrorDetail = "unexpected error"

// ErrorMapper maps application errors to a ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes Problem Details, consulting its mappers for plain errors.
type Responder struct {
	// BaseURI is prepended to problem type URIs if they are relative.
	BaseURI string
	mappers []ErrorMapper
	logger  *slog.Logger
}

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// WithMappers appends error mappers, tried in order.
func WithMappers(mappers ...ErrorMapper) ResponderOption {
	return func(r *Responder) {
		r.mappers = append(r.mappers, mappers...)
	}
}

// WithLogger sets the logger that records unmapped errors. slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		r.logger = logger
	}
}

// NewResponder creates a responder with an optional base URI.
func NewResponder(baseURI string, opts ...ResponderOption) *Responder {
	r := &Responder{BaseURI: baseURI}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond sends a ProblemDetail response with the problem media type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError maps err through the chain. Errors nobody recognises are
// logged with the request path and answered with a generic 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if problem, ok := r.Map(err); ok {
		r.Respond(c, problem)
		return
	}
	r.log().ErrorContext(c.Request.Context(), "unhandled request error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()))
	r.Respond(c, ErrInternal.WithDetail(UnexpectedErrorDetail))
}

// Map resolves err without writing a response.
func (r *Responder) Map(err error) (ProblemDetail, bool) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem, true
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem, true
	}
	return ProblemDetail{}, false
}

func (r *Responder) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}
