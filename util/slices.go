package util

// Contains reports whether elem occurs in slice.
func Contains[T comparable](slice []T, elem T) bool {
	for i := range slice {
		if slice[i] == elem {
			return true
		}
	}

	return false
}

// Map returns the results of applying f to each element of slice in order.
func Map[T, R any](slice []T, f func(T) R) []R {
	result := make([]R, 0, len(slice))
	for _, elem := range slice {
		result = append(result, f(elem))
	}

	return result
}

// Filter returns the elements of slice for which keep returns true.  The
// original slice is not modified.
func Filter[T any](slice []T, keep func(T) bool) []T {
	var result []T
	for _, elem := range slice {
		if keep(elem) {
			result = append(result, elem)
		}
	}

	return result
}
