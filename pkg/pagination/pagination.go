package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 20
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 100
)

// Params holds page pagination inputs from controllers.
type Params struct {
	Page  int
	Limit int
}

// Page describes the slice of the filtered result set that was returned.
type Page struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Normalize clamps the params to sane bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// PageFor builds the page descriptor for a filtered total. TotalPages is
// computed from the same count the page query uses, so the two cannot
// diverge under a status or user filter.
func PageFor(params Params, total int64) Page {
	n := params.Normalize()
	totalPages := total / int64(n.Limit)
	if total%int64(n.Limit) != 0 {
		totalPages++
	}
	return Page{
		Page:       n.Page,
		Limit:      n.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
