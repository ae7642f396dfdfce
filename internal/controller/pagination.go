package controller

// PageState is the transient pagination and filter state for the student
// list view. It lives for the session only and is never persisted.
type PageState struct {
	Page     int
	PageSize int
	Filter   string
}

// NewPageState starts at page 1 with the given page size.
func NewPageState(pageSize int) PageState {
	if pageSize <= 0 {
		pageSize = 10
	}
	return PageState{Page: 1, PageSize: pageSize}
}

// SetFilter replaces the search text and resets to the first page.
func (p *PageState) SetFilter(text string) {
	p.Filter = text
	p.Page = 1
}

// SetPageSize replaces the page size and resets to the first page.
func (p *PageState) SetPageSize(size int) {
	if size <= 0 {
		size = 10
	}
	p.PageSize = size
	p.Page = 1
}

// SetPage jumps to the requested page. Out-of-range values are clamped when
// the list is fetched, not here.
func (p *PageState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	p.Page = page
}

// maxPageButtons is how many page numbers the pagination strip shows.
const maxPageButtons = 7

// PageWindow returns the page numbers to display: at most seven, centered on
// the current page and clamped to [1, totalPages].
func PageWindow(page, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := page - maxPageButtons/2
	if start > totalPages-maxPageButtons+1 {
		start = totalPages - maxPageButtons + 1
	}
	if start < 1 {
		start = 1
	}
	end := start + maxPageButtons - 1
	if end > totalPages {
		end = totalPages
	}
	window := make([]int, 0, maxPageButtons)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}
