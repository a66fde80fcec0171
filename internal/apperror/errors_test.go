package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestPostingFailureClientCaused(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"missing reference", fmt.Errorf("product 9: %w", ErrReferenceNotFound), true},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, true},
		{"gorm check", gorm.ErrCheckConstraintViolated, true},
		{"postgres not null", &pgconn.PgError{Code: "23502"}, true},
		{"postgres numeric overflow", &pgconn.PgError{Code: "22003"}, true},
		{"postgres serialization", &pgconn.PgError{Code: "40001"}, false},
		{"other", errors.New("connection reset"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pf := &PostingFailure{Op: "post sale", Err: tc.err}
			if got := pf.ClientCaused(); got != tc.want {
				t.Fatalf("ClientCaused() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("boom")
	var err error = &PostingFailure{Op: "post purchase", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("posting failure should unwrap to its cause")
	}
	err = fmt.Errorf("handler: %w", &IntegrationFailure{Service: "openai", Err: cause})
	var integ *IntegrationFailure
	if !errors.As(err, &integ) || integ.Service != "openai" {
		t.Fatalf("expected integration failure, got %v", err)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "name", Message: "is required"},
		{Field: "items[0].productId", Message: "is required"},
	}}
	want := "validation failed: name is required; items[0].productId is required"
	if err.Error() != want {
		t.Fatalf("Error() = %q", err.Error())
	}
}
