package utils

// Contains checks if the element is present in the slice.
func Contains[T comparable](slice []T, element T) bool {
	return Index(slice, element) >= 0
}

// Index returns the position of the first occurrence of the element in the slice, or -1 if it isn't
// present.
func Index[T comparable](slice []T, element T) int {
	for i, sliceElement := range slice {
		if sliceElement == element {
			return i
		}
	}
	return -1
}
