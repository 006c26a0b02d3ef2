package models

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Page is the pagination envelope shared by every list endpoint.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// PageRequest is a validated page number and size.
type PageRequest struct {
	Number int
	Size   int
}

func (p PageRequest) Offset() int { return (p.Number - 1) * p.Size }

// LastPage returns the last valid page number for count items; an empty
// result still has page 1.
func (p PageRequest) LastPage(count int) int {
	if count <= 0 || p.Size <= 0 {
		return 1
	}
	return (count + p.Size - 1) / p.Size
}
