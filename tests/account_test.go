package tests

import (
	"net/http"
	"testing"
)

func TestRegister(t *testing.T) {

	// Arrange
	payload := map[string]string{
		"full_name": "Test User",
		"email":     uniqueEmail("real-register"),
		"password":  "Sup3rSecret",
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/account/register", payload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		UserID  string `json:"user_id"`
		Message string `json:"message"`
	}
	decodeSuccess(t, body, &data)
	if data.UserID == "" {
		t.Fatal("expected a user id")
	}
}

func TestRegisterWeakPassword(t *testing.T) {

	// Arrange
	payload := map[string]string{
		"full_name": "Test User",
		"email":     uniqueEmail("real-register-weak"),
		"password":  "alllowercase",
	}

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/account/register", payload, "")

	// Assert
	if status == http.StatusOK {
		t.Fatal("a password without upper case and digit must be rejected")
	}
}

func TestLoginBeforeVerification(t *testing.T) {

	// Arrange
	email := uniqueEmail("real-login-unverified")
	registerPayload := map[string]string{
		"full_name": "Test User",
		"email":     email,
		"password":  "Sup3rSecret",
	}
	status, body := doJSON(t, http.MethodPost, "/api/v1/account/register", registerPayload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}

	loginPayload := map[string]string{
		"email":    email,
		"password": "Sup3rSecret",
	}

	// Act
	status, _ = doJSON(t, http.MethodPost, "/api/v1/account/login", loginPayload, "")

	// Assert
	if status == http.StatusOK {
		t.Fatal("login must not succeed before the email is verified")
	}
}

func TestLoginUnknownAccount(t *testing.T) {

	// Arrange
	payload := map[string]string{
		"email":    uniqueEmail("real-login-none"),
		"password": "Sup3rSecret",
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/account/login", payload, "")

	// Assert
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for an unknown account, got %d", status)
	}
	errEnv := decodeError(t, body)
	if errEnv.Message != "invalid email or password" {
		t.Fatalf("unexpected message %q", errEnv.Message)
	}
}

func TestProfileRequiresToken(t *testing.T) {

	// Act
	status, _ := doJSON(t, http.MethodGet, "/api/v1/account/profile", nil, "")

	// Assert
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", status)
	}
}
