package sqlconn

// Pagination, sayfalı bir listelemenin meta verisidir.
type Pagination struct {
	Page       int   `json:"page"` // 1'den başlar
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// DefaultPerPage is used when a non-positive page size is requested.
const DefaultPerPage = 15

// NewPagination normalizes page and perPage and derives the page count from total.
func NewPagination(page, perPage int, total int64) *Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page = max(page, 1)
	total = max(total, 0)

	totalPages := int(total / int64(perPage))
	if total%int64(perPage) > 0 {
		totalPages++
	}
	return &Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the number of rows skipped before the page.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev reports whether a previous page exists.
func (p *Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p *Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}
