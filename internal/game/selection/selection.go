// Package selection tracks the numbers a player has drawn for a game.
package selection

// Size is the number of values a complete selection holds.
const Size = 6

// Selection is the ordered set of drawn numbers.
//
// Invariant: slots [0, n) are filled and [n, Size) are empty; filled slots
// are never cleared.
type Selection struct {
	values [Size]int
	n      int
}

// Of returns a Selection filled with values in order. Values beyond Size are
// ignored.
func Of(values ...int) Selection {
	var s Selection
	for _, v := range values {
		s.Push(v)
	}
	return s
}

// Push fills the first empty slot with v.
//
// Postcondition: returns false with no effect when the selection is complete.
func (s *Selection) Push(v int) bool {
	if s.n >= Size {
		return false
	}
	s.values[s.n] = v
	s.n++
	return true
}

// IsComplete reports whether every slot is filled.
func (s Selection) IsComplete() bool {
	return s.n == Size
}

// Len returns the number of filled slots.
func (s Selection) Len() int {
	return s.n
}

// At returns the value in slot i and whether that slot is filled.
func (s Selection) At(i int) (int, bool) {
	if i < 0 || i >= s.n {
		return 0, false
	}
	return s.values[i], true
}

// Values returns the filled values in slot order.
func (s Selection) Values() []int {
	return append([]int(nil), s.values[:s.n]...)
}
