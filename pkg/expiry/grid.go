package expiry

// DefaultRowWidth is the number of cards per grid row.
const DefaultRowWidth = 2

// Slot is one cell of a grid row. Filled is false for the padding cells that
// complete the last row.
type Slot[T any] struct {
	Item   T
	Filled bool
}

// Pair lays items out DefaultRowWidth per row.
func Pair[T any](items []T) [][]Slot[T] {
	return PairWidth(items, DefaultRowWidth)
}

// PairWidth partitions items into ceil(len/width) rows of exactly width
// slots, keeping input order. An empty input yields no rows. A non-positive
// width falls back to DefaultRowWidth.
func PairWidth[T any](items []T, width int) [][]Slot[T] {
	if width <= 0 {
		width = DefaultRowWidth
	}
	if len(items) == 0 {
		return [][]Slot[T]{}
	}
	total := (len(items) + width - 1) / width
	rows := make([][]Slot[T], total)
	for r := range rows {
		row := make([]Slot[T], width)
		for c := range row {
			idx := r*width + c
			if idx < len(items) {
				row[c] = Slot[T]{Item: items[idx], Filled: true}
			}
		}
		rows[r] = row
	}
	return rows
}

// Flatten returns the filled slots in row order, undoing PairWidth.
func Flatten[T any](rows [][]Slot[T]) []T {
	var out []T
	for _, row := range rows {
		for _, slot := range row {
			if slot.Filled {
				out = append(out, slot.Item)
			}
		}
	}
	return out
}
