package contract

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Offset returns the number of rows to skip for the page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPaginationMeta builds page metadata for a result set of total items.
func NewPaginationMeta(p Pagination, total int64) PaginationMeta {
	pages := 0
	if p.PageSize > 0 {
		pages = int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	}
	return PaginationMeta{
		CurrentPage: p.Page,
		PageSize:    p.PageSize,
		TotalItems:  total,
		TotalPages:  pages,
		HasNext:     p.Page < pages,
		HasPrevious: p.Page > 1,
	}
}
