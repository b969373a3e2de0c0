package pagination

const (
	ProductsPerPage = 6
	ProductsPerRow  = 3
)

// Page is one display group. Items keep their original order; Columns holds
// the same items dealt round-robin, item i landing in column i%width.
type Page[T any] struct {
	Number  int   `json:"number"`
	Items   []T   `json:"items"`
	Columns [][]T `json:"columns"`
}

// Group partitions items into ceil(len/size) pages. An empty input yields no pages.
func Group[T any](items []T, size, width int) []Page[T] {
	if size <= 0 {
		size = ProductsPerPage
	}
	if width <= 0 {
		width = ProductsPerRow
	}

	total := CalculateTotalPages(len(items), size)
	pages := make([]Page[T], 0, total)
	for n := 1; n <= total; n++ {
		slice := GetPageSlice(items, n, size)
		columns := make([][]T, width)
		for i, item := range slice {
			columns[i%width] = append(columns[i%width], item)
		}
		pages = append(pages, Page[T]{
			Number:  n,
			Items:   slice,
			Columns: columns,
		})
	}
	return pages
}

// GetPageSlice returns a slice of items for the given 1-based page.
func GetPageSlice[T any](items []T, page, itemsPerPage int) []T {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * itemsPerPage
	if start >= len(items) {
		return nil
	}

	end := start + itemsPerPage
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// CalculateTotalPages calculates the total number of pages, zero for no items.
func CalculateTotalPages(totalItems, itemsPerPage int) int {
	if itemsPerPage <= 0 || totalItems <= 0 {
		return 0
	}
	pages := totalItems / itemsPerPage
	if totalItems%itemsPerPage > 0 {
		pages++
	}
	return pages
}
