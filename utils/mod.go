package utils

// FindIndex returns the position of item in slice, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// FilterIndex returns the indices of the elements that satisfy keep.
func FilterIndex[T any](slice []T, keep func(T) bool) []int {
	var indices []int
	for i, v := range slice {
		if keep(v) {
			indices = append(indices, i)
		}
	}
	return indices
}
