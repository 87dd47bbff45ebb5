package sitecontent

// Pagination defaults and bounds for listing endpoints.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is the clamped window computed for one listing call.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Paginate clamps raw page/limit inputs and computes the item window.
//
// page < 1 falls back to 1, limit < 1 to DefaultLimit, and limit is capped
// at MaxLimit. TotalPages is the ceiling of total/limit except that an
// empty collection has zero pages, not one. Page is never clamped against
// TotalPages: requesting a page past the end legitimately yields an empty
// window.
func Paginate(page, limit int, total int64) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Offset:     (page - 1) * limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
