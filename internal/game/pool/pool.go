// Package pool holds the large and small number inventories a player draws
// from, and the rejection-sampling draw over their fixed slots.
package pool

import "fmt"

// Kind selects one of the two inventories.
type Kind int

const (
	// Large is the inventory of 25, 50, 75 and 100.
	Large Kind = iota
	// Small is the inventory of two copies each of 1 through 10.
	Small
)

// String returns "large" or "small".
func (k Kind) String() string {
	switch k {
	case Large:
		return "large"
	case Small:
		return "small"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	// LargeCount is the fixed number of slots in the large inventory.
	LargeCount = 4
	// SmallCount is the fixed number of slots in the small inventory.
	SmallCount = 20
)

// Slot is one position of an inventory. Value is fixed at construction;
// only Present changes, and only from true to false.
type Slot struct {
	Value   int
	Present bool
}

// Pool holds both inventories.
//
// Invariant: len(large) == LargeCount and len(small) == SmallCount.
type Pool struct {
	large [LargeCount]Slot
	small [SmallCount]Slot
}

// New builds a Pool from the given values, shuffling each inventory with src.
//
// Precondition: len(large) == LargeCount, len(small) == SmallCount, src non-nil.
// Postcondition: every slot is present; the multiset of values per kind equals the input.
func New(large, small []int, src Source) (*Pool, error) {
	if len(large) != LargeCount {
		return nil, fmt.Errorf("pool: large inventory needs %d values, got %d", LargeCount, len(large))
	}
	if len(small) != SmallCount {
		return nil, fmt.Errorf("pool: small inventory needs %d values, got %d", SmallCount, len(small))
	}

	l := append([]int(nil), large...)
	s := append([]int(nil), small...)
	Shuffle(l, src)
	Shuffle(s, src)

	p := &Pool{}
	for i, v := range l {
		p.large[i] = Slot{Value: v, Present: true}
	}
	for i, v := range s {
		p.small[i] = Slot{Value: v, Present: true}
	}
	return p, nil
}

func (p *Pool) slots(kind Kind) []Slot {
	switch kind {
	case Large:
		return p.large[:]
	case Small:
		return p.small[:]
	default:
		panic(fmt.Sprintf("pool: unknown kind %d", int(kind)))
	}
}

// Size returns the fixed slot count of kind.
func (p *Pool) Size(kind Kind) int {
	return len(p.slots(kind))
}

// HasAny reports whether any slot of kind is still present.
func (p *Pool) HasAny(kind Kind) bool {
	for _, s := range p.slots(kind) {
		if s.Present {
			return true
		}
	}
	return false
}

// Remaining returns the number of present slots of kind.
func (p *Pool) Remaining(kind Kind) int {
	n := 0
	for _, s := range p.slots(kind) {
		if s.Present {
			n++
		}
	}
	return n
}

// RemoveAt marks slot of kind as drawn and returns its value.
//
// Postcondition: returns ok=false without side effects when slot is out of
// range or already drawn.
func (p *Pool) RemoveAt(kind Kind, slot int) (int, bool) {
	slots := p.slots(kind)
	if slot < 0 || slot >= len(slots) || !slots[slot].Present {
		return 0, false
	}
	slots[slot].Present = false
	return slots[slot].Value, true
}

// Slots returns a copy of the slots of kind, in slot order, for renderers.
func (p *Pool) Slots(kind Kind) []Slot {
	return append([]Slot(nil), p.slots(kind)...)
}

// present reports whether slot of kind is still occupied.
func (p *Pool) present(kind Kind, slot int) bool {
	return p.slots(kind)[slot].Present
}
