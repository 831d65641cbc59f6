package uid

import (
	"encoding/hex"
	"testing"
)

var _ StringID = (*ObjectIDGenerator)(nil)

func TestObjectIDGeneratorGenerate(t *testing.T) {

	// Arrange
	g, err := NewObjectIDGenerator()
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	// Act
	first := g.Generate()
	second := g.Generate()

	// Assert
	if len(first) != 64 {
		t.Errorf("got length %d, want 64", len(first))
	}
	if _, err := hex.DecodeString(first); err != nil {
		t.Errorf("id %q is not valid hex: %v", first, err)
	}
	if first == second {
		t.Error("consecutive ids must differ")
	}
}
