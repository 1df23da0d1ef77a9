package domain

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is the paginate stage input. Use NewPageRequest to get the
// defaults and bounds applied.
type PageRequest struct {
	Page  int
	Limit int
}

func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of a listing together with its position in the full
// result set.
type Page[T any] struct {
	Docs         []T   `json:"docs"`
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
	NextPage     *int  `json:"nextPage"`
	HasNextPage  bool  `json:"hasNextPage"`
}

func NewPage[T any](docs []T, req PageRequest, total int64) Page[T] {
	if docs == nil {
		docs = []T{}
	}
	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	page := Page[T]{
		Docs:         docs,
		CurrentPage:  req.Page,
		TotalPages:   totalPages,
		TotalResults: total,
	}
	if req.Page < totalPages {
		next := req.Page + 1
		page.NextPage = &next
		page.HasNextPage = true
	}
	return page
}
