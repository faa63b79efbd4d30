// Package util holds small generic helpers shared across packages.
package util

// Ptr returns a pointer to a copy of v, for optional fields set from literals.
func Ptr[T any](v T) *T {
	return &v
}
