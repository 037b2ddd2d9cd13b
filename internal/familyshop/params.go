package familyshop

import (
	"net/url"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListParams are shared by every paginated list action.
type ListParams struct {
	Page  int
	Limit int
}

func (p ListParams) query() url.Values {
	page := p.Page
	if page < 1 {
		page = defaultPage
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// setFilter adds a filter parameter only when it was explicitly
// supplied; empty and "all" selections never reach the query string.
func setFilter(q url.Values, key, value string) {
	if value == "" || value == "all" {
		return
	}
	q.Set(key, value)
}

// page is the pagination block list endpoints return alongside rows.
type page struct {
	Count       int `json:"count"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}
