package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	DefaultPage     = 1 // Page numbering is 1-based
)

// PageWindow describes one page of an ordered sequence. The window is
// always valid: an out-of-range request clamps to the last page, and an
// empty sequence yields an empty page 1.
type PageWindow struct {
	Number     int
	Size       int
	TotalCount int64
}

// NewPageWindow clamps the 1-based page number against totalCount items
// of size-sized pages.
func NewPageWindow(page, size int, totalCount int64) PageWindow {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < DefaultPage {
		page = DefaultPage
	}

	totalPages := TotalPages(totalCount, size)
	if page > totalPages {
		page = totalPages
	}

	return PageWindow{
		Number:     page,
		Size:       size,
		TotalCount: totalCount,
	}
}

// TotalPages returns the number of pages needed for totalCount items.
// An empty sequence still has one (empty) page.
func TotalPages(totalCount int64, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if totalCount <= 0 {
		return 1
	}
	return int(math.Ceil(float64(totalCount) / float64(size)))
}

// Offset converts the window into a 0-based SQL offset.
func (w PageWindow) Offset() int {
	return (w.Number - 1) * w.Size
}

// HasNext reports whether a page follows this one.
func (w PageWindow) HasNext() bool {
	return w.Number < TotalPages(w.TotalCount, w.Size)
}

// HasPrevious reports whether a page precedes this one.
func (w PageWindow) HasPrevious() bool {
	return w.Number > DefaultPage
}

// Next returns the following page number.
func (w PageWindow) Next() int {
	return w.Number + 1
}

// Previous returns the preceding page number.
func (w PageWindow) Previous() int {
	return w.Number - 1
}

// ParsePageParam extracts the 1-based page parameter from the request.
// Missing, non-numeric or sub-1 values fall back to page 1.
func ParsePageParam(c *gin.Context) int {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < DefaultPage {
		page = DefaultPage
	}
	return page
}
