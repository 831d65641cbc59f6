package instrument

import (
	"context"
	"testing"
)

func TestCorrelationIDRoundTrip(t *testing.T) {

	// Arrange
	ctx := SetCorrelationID(context.Background(), "abc-123")

	// Act & Assert
	if got := GetCorrelationID(ctx); got != "abc-123" {
		t.Errorf("got %q, want %q", got, "abc-123")
	}
}

func TestCorrelationIDUnset(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}
