package validator

import (
	"errors"
	"testing"
)

var _ Validator = (*V10Validator)(nil)

func TestV10ValidatorValidate(t *testing.T) {

	// Arrange
	type input struct {
		Email string `validate:"required,email"`
	}
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("constructing validator: %v", err)
	}

	// Act & Assert
	if err := v.Validate(input{Email: "user@example.com"}); err != nil {
		t.Errorf("a valid struct must pass, got %v", err)
	}

	err = v.Validate(input{})
	if err == nil {
		t.Fatal("a missing required field must fail")
	}
	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a V10ValidationError, got %T", err)
	}
	if _, ok := verr.Values()["email"]; !ok {
		t.Errorf("expected an error for field email, got %v", verr.Values())
	}
}
