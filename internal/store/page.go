package store

import "math"

const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// Page selects a window of a sorted result set.
type Page struct {
	Number int
	Size   int
}

// NewPage coerces non-positive values to the defaults and caps the size at
// MaxPageSize.
func NewPage(number, size int) Page {
	if number <= 0 {
		number = DefaultPageNumber
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Skip is the number of records before the page. It saturates at
// math.MaxInt instead of overflowing.
func (p Page) Skip() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// Window returns the [start, end) bounds of the page inside n records.
func (p Page) Window(n int) (int, int) {
	start := p.Skip()
	if start > n {
		start = n
	}
	if p.Size <= 0 || p.Size > n-start {
		return start, n
	}
	return start, start + p.Size
}
