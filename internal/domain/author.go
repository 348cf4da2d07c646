package domain

// Author is a writer listed in the catalog.
// BookCount is derived from the book collection when the fixture backend serves it.
type Author struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	Avatar    string `json:"avatar"`
	BookCount int    `json:"bookCount"`
}

// Ref returns the projection embedded in books.
func (a *Author) Ref() AuthorRef {
	return AuthorRef{ID: a.ID, Name: a.Name, Bio: a.Bio}
}

// Category groups books by subject.
type Category struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	BookCount int    `json:"bookCount"`
}

// Ref returns the projection embedded in books.
func (c *Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name}
}

// Pagination describes one page of a paged listing.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination computes the page metadata for page (1-based) of size limit over total items.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page*limit < total,
		HasPrev:    page > 1,
	}
}

// Window returns the half-open index range [start, end) the page covers.
// Pages past the end yield an empty range.
func (p Pagination) Window() (start, end int) {
	start = (p.Page - 1) * p.Limit
	if start >= p.Total || start < 0 {
		return 0, 0
	}
	return start, min(start+p.Limit, p.Total)
}

// AuthorPage is one page of the author listing.
type AuthorPage struct {
	Authors    []Author   `json:"authors"`
	Pagination Pagination `json:"pagination"`
}
