package solution

import (
	"strings"

	"github.com/cory-johannsen/countdown/internal/game/selection"
)

// Check scores input against the selection and target.
//
// The input is rejected (ok == false) when it is blank, names more literals
// than a selection holds, uses numbers that were not dealt or were dealt
// fewer times, or fails to evaluate. Otherwise distance is |result - target|.
//
// Precondition: sel must be complete.
func Check(input string, sel selection.Selection, target int) (distance int, ok bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false
	}

	used := Scan(input)
	if len(used) > selection.Size {
		return 0, false
	}
	if !ValidateUsage(used, sel) {
		return 0, false
	}

	result, err := Evaluate(input)
	if err != nil {
		return 0, false
	}
	return Distance(result, int64(target)), true
}

// Distance returns |result - target|.
func Distance(result, target int64) int {
	if result > target {
		return int(result - target)
	}
	return int(target - result)
}
