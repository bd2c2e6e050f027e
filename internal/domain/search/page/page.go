// Package page computes the pagination window for a result count.
package page

import "strconv"

// Size is the fixed number of results per page in browse and search modes.
const Size = 25

// Descriptor is the clamped pagination window for one request.
// StartIndex and EndIndex are 1-based and inclusive.
type Descriptor struct {
	TotalCount  int
	TotalPages  int
	CurrentPage int
	StartIndex  int
	EndIndex    int
	PageSize    int
}

// Compute reconciles a requested page with the actual result count.
//
// The requested page is clamped to [1, TotalPages]. With no results,
// TotalPages is 0 and the window is empty; callers check TotalCount rather
// than the indexes to decide whether to fetch.
func Compute(requested, pageSize, totalCount int) Descriptor {
	if pageSize <= 0 {
		pageSize = Size
	}
	if totalCount < 0 {
		totalCount = 0
	}

	totalPages := totalCount / pageSize
	if totalCount%pageSize != 0 {
		totalPages++
	}

	current := requested
	if current > totalPages {
		current = totalPages
	}
	if current < 1 {
		current = 1
	}

	skipped := pageSize * (current - 1)
	return Descriptor{
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		CurrentPage: current,
		StartIndex:  skipped + 1,
		EndIndex:    skipped + min(pageSize, totalCount-skipped),
		PageSize:    pageSize,
	}
}

// Offset is the zero-based index of the first result on the page.
func (d Descriptor) Offset() int { return d.PageSize * (d.CurrentPage - 1) }

// IsEmpty reports whether there is nothing to fetch.
func (d Descriptor) IsEmpty() bool { return d.TotalCount == 0 }

// ParseNumber normalizes a raw page parameter: anything that is not a
// positive integer becomes 1.
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
