// Package uid provides unique identifier generators with string and
// numeric shapes. String IDs are used for correlation and external
// references, numeric IDs for database primary keys.
package uid

// StringID generates opaque string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates monotonic-ish numeric identifiers.
type NumberID interface {
	Generate() int64
}
