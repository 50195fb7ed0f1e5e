package domain

const (
	DefaultPageFrom = 0
	DefaultPageSize = 10
)

// Page is an offset/limit window over an ordered result set.
type Page struct {
	Offset int
	Limit  int
}

// NewPage validates a from/size pair coming from a caller.
func NewPage(from, size int) (Page, error) {
	if from < 0 {
		return Page{}, NewBadRequestError("from must not be negative")
	}
	if size <= 0 {
		return Page{}, NewBadRequestError("size must be positive")
	}
	return Page{Offset: from, Limit: size}, nil
}
