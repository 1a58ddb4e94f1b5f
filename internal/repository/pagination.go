package repository

import "math"

// Page represents a simple limit/offset window for listing operations.
type Page struct {
	Limit  int
	Offset int
}

// PageFor converts a 1-based page number and size into a limit/offset window.
// Non-positive inputs are treated as the first page of size one; callers normalize sizes first.
// An offset that would overflow saturates at math.MaxInt, which selects no rows.
func PageFor(number, size int) Page {
	if size <= 0 {
		size = 1
	}
	if number <= 0 {
		number = 1
	}
	if number-1 > math.MaxInt/size {
		return Page{Limit: size, Offset: math.MaxInt}
	}
	return Page{Limit: size, Offset: (number - 1) * size}
}

// PageResult carries a slice of items and the total count matching the query.
// Total is reported even when the window is past the end and Items is empty.
type PageResult[T any] struct {
	Items []T
	Total int
}
