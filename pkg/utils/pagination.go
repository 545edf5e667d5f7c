package utils

// CalculateTotalPages rounds total/perPage up; degenerate inputs page to 0.
func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	pages := (total + int64(perPage) - 1) / int64(perPage)
	return int(pages)
}

// CalculateOffset converts a 1-based page number to a row offset.
func CalculateOffset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}
