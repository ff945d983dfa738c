package query

// PageRef points at an adjacent result page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries the next/prev descriptors of the response envelope.
// Absent descriptors are omitted from the serialized form.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Window is the offset arithmetic for one page of a result set.
type Window struct {
	Skip       int64
	Take       int64
	Pagination Pagination
}

// Paginate computes the window for page/limit over total matching documents.
// It never touches data; callers apply Skip/Take to their own query.
func Paginate(page, limit int, total int64) Window {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	skip := int64(page-1) * int64(limit)
	w := Window{Skip: skip, Take: int64(limit)}

	if skip+int64(limit) < total {
		w.Pagination.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if skip > 0 {
		w.Pagination.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return w
}
