package hash

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

var (
	_ Hash = (*Bcrypt)(nil)
	_ Hash = (*HMACSHA256)(nil)
)

func TestBcryptRoundTrip(t *testing.T) {

	// Arrange
	h := NewBcrypt(bcrypt.MinCost, "pepper")

	// Act
	hashed, err := h.Hash("Sup3rSecret")

	// Assert
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !h.Verify(string(hashed), "Sup3rSecret") {
		t.Error("the original plaintext must verify")
	}
	if h.Verify(string(hashed), "wrong-password") {
		t.Error("a different plaintext must not verify")
	}
}

func TestHMACSHA256RoundTrip(t *testing.T) {

	// Arrange
	h := NewHMACSHA256("secret")

	// Act
	hashed, err := h.Hash("123456")

	// Assert
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !h.Verify(string(hashed), "123456") {
		t.Error("the original input must verify")
	}
	if h.Verify(string(hashed), "654321") {
		t.Error("a different input must not verify")
	}
}
