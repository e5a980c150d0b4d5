// Package pagination computes skip/limit windows and page metadata shared by
// every list endpoint.
package pagination

import "strconv"

const (
	// DefaultPage is used when no page parameter is sent.
	DefaultPage = 1
	// DefaultSize is used when no size parameter is sent.
	DefaultSize = 10
	// MaxSize caps event and alert pages. The cap is applied before skip is
	// computed so oversized requests cannot widen the window.
	MaxSize = 100
)

// Params is a parsed, clamped page request.
type Params struct {
	Page int
	Size int
}

// Parse reads page/size query values, applying defaults and, when maxSize > 0,
// the hard cap. Non-numeric or non-positive values fall back to the defaults.
func Parse(pageStr, sizeStr string, maxSize int) Params {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		size = DefaultSize
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return Params{Page: page, Size: size}
}

// Skip returns the number of documents to skip for this window.
func (p Params) Skip() int64 {
	return int64((p.Page - 1) * p.Size)
}

// Limit returns the window size.
func (p Params) Limit() int64 {
	return int64(p.Size)
}

// Meta is the pagination envelope returned alongside list data.
type Meta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPage"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewMeta derives page metadata from the window and the total document count.
// total == 0 yields zero pages and both flags false.
func NewMeta(p Params, total int64) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Meta{
		Total:       total,
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		Size:        p.Size,
		HasNextPage: int64(p.Page)*int64(p.Size) < total,
		HasPrevPage: p.Page > 1 && total > 0,
	}
}
