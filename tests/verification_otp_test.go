package tests

import (
	"net/http"
	"testing"
)

func TestSendEmailOTP(t *testing.T) {

	// Arrange
	payload := map[string]string{
		"email":   uniqueEmail("real-otp"),
		"purpose": "signup",
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/verification/otp/email", payload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("send email otp failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeSuccess(t, body, &data)
	if !data.Success {
		t.Fatalf("expected otp to be sent, got message %q", data.Message)
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {

	// Arrange
	email := uniqueEmail("real-otp-wrong")
	sendPayload := map[string]string{"email": email, "purpose": "signup"}
	status, body := doJSON(t, http.MethodPost, "/api/v1/verification/otp/email", sendPayload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("send email otp failed: status=%d message=%q", status, errEnv.Message)
	}

	verifyPayload := map[string]string{
		"destination": email,
		"code":        "000000",
		"channel":     "email",
	}

	// Act
	status, body = doJSON(t, http.MethodPost, "/api/v1/verification/otp/verify", verifyPayload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("verify otp failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		Success           bool `json:"success"`
		RemainingAttempts *int `json:"remaining_attempts"`
	}
	decodeSuccess(t, body, &data)
	if data.Success {
		t.Fatal("a made-up code must not verify")
	}
	if data.RemainingAttempts == nil || *data.RemainingAttempts != 2 {
		t.Fatalf("expected 2 remaining attempts, got %v", data.RemainingAttempts)
	}
}

func TestVerifyOTPUnknownDestination(t *testing.T) {

	// Arrange
	payload := map[string]string{
		"destination": uniqueEmail("real-otp-none"),
		"code":        "123456",
		"channel":     "email",
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/verification/otp/verify", payload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("verify otp failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		Success bool `json:"success"`
	}
	decodeSuccess(t, body, &data)
	if data.Success {
		t.Fatal("an address that never requested a code must not verify")
	}
}

func TestResendOTP(t *testing.T) {

	// Arrange
	email := uniqueEmail("real-otp-resend")
	sendPayload := map[string]string{"email": email, "purpose": "signup"}
	status, body := doJSON(t, http.MethodPost, "/api/v1/verification/otp/email", sendPayload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("send email otp failed: status=%d message=%q", status, errEnv.Message)
	}

	resendPayload := map[string]string{
		"destination": email,
		"channel":     "email",
		"purpose":     "signup",
	}

	// Act
	status, body = doJSON(t, http.MethodPost, "/api/v1/verification/otp/resend", resendPayload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("resend otp failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeSuccess(t, body, &data)
	if !data.Success {
		t.Fatalf("expected resend to issue a new code, got message %q", data.Message)
	}
}
