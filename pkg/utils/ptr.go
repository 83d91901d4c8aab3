package utils

// Ptr returns a pointer to v. Handy for pointer-typed option fields that
// need to point at a literal value.
//
// Example usage:
//
//	opts := schema.TableOptions{ID: utils.Ptr("")}
func Ptr[T any](v T) *T {
	return &v
}
