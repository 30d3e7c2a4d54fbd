package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest selects a 1-indexed page.
type PageRequest struct {
	PageNo   int
	PageSize int
}

// Normalize clamps the request into the supported range.
func (p PageRequest) Normalize() PageRequest {
	if p.PageNo < 1 {
		p.PageNo = 1
	}
	switch {
	case p.PageSize < 1:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset is only meaningful when Beyond reports false; large page numbers
// would overflow it.
func (p PageRequest) Offset() int {
	return (p.PageNo - 1) * p.PageSize
}

// Beyond reports whether the page starts at or after the last of total rows.
// It compares page indexes, so it cannot overflow for any PageNo.
func (p PageRequest) Beyond(total int64) bool {
	if p.PageSize < 1 || total <= 0 {
		return true
	}
	pages := (total + int64(p.PageSize) - 1) / int64(p.PageSize)
	return int64(p.PageNo-1) >= pages
}

type Page[T any] struct {
	Records  []T   `json:"records"`
	Total    int64 `json:"total"`
	PageNo   int   `json:"pageNo"`
	PageSize int   `json:"pageSize"`
	Pages    int64 `json:"pages"`
}

// NewPage builds a page; records is never nil so it encodes as [].
func NewPage[T any](req PageRequest, records []T, total int64) Page[T] {
	if records == nil {
		records = []T{}
	}
	var pages int64
	if req.PageSize > 0 {
		pages = (total + int64(req.PageSize) - 1) / int64(req.PageSize)
	}
	return Page[T]{
		Records:  records,
		Total:    total,
		PageNo:   req.PageNo,
		PageSize: req.PageSize,
		Pages:    pages,
	}
}
