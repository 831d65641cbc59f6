package validator

// Validator validates structs using their field tags.
type Validator interface {
	// Validate checks the given struct and returns an error describing the
	// failing fields, or nil when the value is valid.
	Validate(data any) error
}
