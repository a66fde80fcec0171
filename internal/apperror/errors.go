package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrReferenceNotFound marks a posting that points at a row that does not exist
var ErrReferenceNotFound = errors.New("referenced record not found")

// FieldError describes one invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed or missing input fields
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// NotFoundError reports that a record looked up by id does not exist
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", strings.ToLower(e.Resource), e.ID)
}

// PostingFailure wraps any error raised inside an atomic posting
type PostingFailure struct {
	Op  string
	Err error
}

func (e *PostingFailure) Error() string {
	return e.Op + " failed: " + e.Err.Error()
}

func (e *PostingFailure) Unwrap() error { return e.Err }

// ClientCaused reports whether the posting failed because of what the caller sent
func (e *PostingFailure) ClientCaused() bool {
	if errors.Is(e.Err, ErrReferenceNotFound) ||
		errors.Is(e.Err, gorm.ErrForeignKeyViolated) ||
		errors.Is(e.Err, gorm.ErrCheckConstraintViolated) ||
		errors.Is(e.Err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(e.Err, &pgErr) {
		return false
	}
	// class 22 is data exception (e.g. numeric overflow), class 23 integrity constraint violation
	return strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")
}

// IntegrationFailure wraps a failed call to an external service
type IntegrationFailure struct {
	Service string
	Err     error
}

func (e *IntegrationFailure) Error() string {
	return e.Service + ": " + e.Err.Error()
}

func (e *IntegrationFailure) Unwrap() error { return e.Err }
