package models

// Default and maximum page sizes for list queries.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a zero-based page selection.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the request to valid bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of a list query.
type Page[T any] struct {
	Items []T
	Page  int
	Size  int
	Total int
}
