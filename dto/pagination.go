package dto

// Pagination carries limit/offset parsed from the query string.
type Pagination struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Normalize clamps the pagination window to sane bounds.
func (p *Pagination) Normalize() {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
