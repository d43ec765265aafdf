package listview

// Page is one page of a list. Number is 1-based.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int
	TotalPages int
}

// HasPrev and HasNext report whether neighbouring pages exist.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Paginate returns page number of items split into pages of size. Out of
// range page numbers are clamped; an empty list has one empty page.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	total := len(items)
	pages := max(1, (total+size-1)/size)
	number = min(max(number, 1), pages)

	start := min((number-1)*size, total)
	end := min(start+size, total)

	return Page[T]{
		Items:      items[start:end:end],
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
	}
}
