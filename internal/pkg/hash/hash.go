package hash

// Hash abstracts hashing and verification of secret values.
type Hash interface {
	// Hash produces a hash of the given plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the previously hashed value.
	Verify(hashed, plaintext string) bool
}
