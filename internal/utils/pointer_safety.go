package utils

// Value dereferences v, returning the zero value when v is nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v. Used for the optional fields of update
// payloads, where nil means "leave unchanged".
func Ptr[T any](v T) *T {
	return &v
}
