// Package ptr has helpers for pointer literals.
package ptr

// To returns a pointer to the given value.
func To[T any](v T) *T {
	return &v
}
