package sales

// Page is a slice of an ordered result set with its metadata.
type Page struct {
	Rows       []Sale
	Total      int
	Page       int
	PageSize   int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// Paginate slices rows into the requested page, clamping page into
// [1, totalPages]. A non-positive pageSize falls back to the default.
func Paginate(rows []Sale, page, pageSize int) Page {
	size := pageSize
	if size <= 0 {
		size = defaultPageSize
	}

	total := len(rows)
	if total == 0 {
		return Page{Rows: []Sale{}, Page: 1, PageSize: size}
	}

	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}
	current := min(max(page, 1), totalPages)

	start := (current - 1) * size
	end := start + min(size, total-start)

	return Page{
		Rows:       rows[start:end],
		Total:      total,
		Page:       current,
		PageSize:   size,
		TotalPages: totalPages,
		HasNext:    current < totalPages,
		HasPrev:    current > 1,
	}
}
