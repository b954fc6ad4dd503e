package controller

const defaultPageSize = 10

// pageParams mirrors the defaults the services apply so responses echo them.
func pageParams(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	return page, limit
}
