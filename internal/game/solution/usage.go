package solution

import "github.com/cory-johannsen/countdown/internal/game/selection"

// ValidateUsage reports whether used is a sub-multiset of the selected values:
// every literal must have been dealt, and no value may be used more times
// than it was dealt.
//
// Precondition: sel must be complete. Panics otherwise.
func ValidateUsage(used []int, sel selection.Selection) bool {
	if !sel.IsComplete() {
		panic("solution: ValidateUsage precondition violated: selection must be complete")
	}

	counts := make(map[int]int, selection.Size)
	for _, v := range sel.Values() {
		counts[v]++
	}

	for _, v := range used {
		n, ok := counts[v]
		if !ok {
			return false
		}
		if n == 1 {
			delete(counts, v)
		} else {
			counts[v] = n - 1
		}
	}
	return true
}
