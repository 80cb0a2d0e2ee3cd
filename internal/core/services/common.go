package services

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// normalizePage clamps paging parameters to sane bounds.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
