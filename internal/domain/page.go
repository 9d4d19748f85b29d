package domain

// MessagePage is one page of the board feed plus the metadata needed to render pagination.
type MessagePage struct {
	Messages      []*Message `json:"messages"`
	SearchTerm    string     `json:"search_term"`
	TotalMessages int        `json:"total_messages"`
	TotalPages    int        `json:"total_pages"`
	CurrentPage   int        `json:"current_page"`
	TagFilter     *int64     `json:"tag_filter,omitempty"`
}

// HasPrev reports whether a previous page exists.
func (p *MessagePage) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a next page exists.
func (p *MessagePage) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Offset returns the row offset of the current page.
func (p *MessagePage) Offset(pageSize int) int {
	return (p.CurrentPage - 1) * pageSize
}

// PageBounds derives the number of addressable pages for total rows and clamps
// the requested page into [1, totalPages].
//
// totalPages is never below 1, even for an empty result, and never above maxPages.
// Rows past maxPages*pageSize are unreachable by page number.
func PageBounds(total, pageSize, maxPages, requested int) (totalPages, currentPage int) {
	if pageSize < 1 {
		pageSize = 1
	}

	rows := max(total, 1)
	totalPages = (rows + pageSize - 1) / pageSize
	if maxPages > 0 {
		totalPages = min(totalPages, maxPages)
	}
	totalPages = max(totalPages, 1)

	currentPage = requested
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}
	return totalPages, currentPage
}
