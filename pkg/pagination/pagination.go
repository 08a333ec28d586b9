package pagination

const (
	// DefaultPerPage is the page size when per_page is not provided.
	DefaultPerPage = 10
	// MaxPerPage caps how many items a single page may hold.
	MaxPerPage = 100
	// FirstPage is the lowest valid page number.
	FirstPage = 1
)

// Params are validated page-number pagination inputs.
type Params struct {
	Page    int
	PerPage int
}

// Valid reports whether the params are within bounds.
func (p Params) Valid() bool {
	return p.Page >= FirstPage && p.PerPage >= 1 && p.PerPage <= MaxPerPage
}

// TotalPages is ceil(total/perPage), and 0 when there is nothing to page.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// Bounds returns the [start, end) slice window for the page, clipped to length.
// A page past the end yields start == end.
func Bounds(p Params, length int) (start, end int) {
	if length <= 0 || !p.Valid() {
		return 0, 0
	}
	start = (p.Page - 1) * p.PerPage
	if start >= length {
		return length, length
	}
	end = start + p.PerPage
	if end > length {
		end = length
	}
	return start, end
}
