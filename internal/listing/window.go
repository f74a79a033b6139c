package listing

import "math"

// Window is the LIMIT/OFFSET pair selecting one page.
type Window struct {
	Limit  int
	Offset int
}

// NewWindow computes the window of page. page and perPage below 1 are
// raised to 1 first, and an offset past math.MaxInt saturates, so Offset
// is never negative.
func NewWindow(page, perPage int) Window {
	page = max(page, 1)
	perPage = max(perPage, 1)

	offset := math.MaxInt
	if page-1 <= math.MaxInt/perPage {
		offset = (page - 1) * perPage
	}
	return Window{
		Limit:  perPage,
		Offset: offset,
	}
}

// TotalPages returns how many pages of perPage rows hold total rows.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Slice returns the rows of items that fall inside w.
func Slice[T any](items []T, w Window) []T {
	if w.Offset < 0 || w.Limit < 1 || w.Offset >= len(items) {
		return []T{}
	}
	end := w.Offset + min(w.Limit, len(items)-w.Offset)
	return items[w.Offset:end]
}
