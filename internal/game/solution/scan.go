// Package solution verifies a player's typed arithmetic against the numbers
// they were dealt and scores it against the target.
package solution

import (
	"strconv"
	"strings"
)

// Scan returns the integer literals typed in input, in order.
//
// Input is split on every byte that is not an ASCII digit. Fragments that do
// not fit in an unsigned 32-bit integer are skipped.
func Scan(input string) []int {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r < '0' || r > '9'
	})
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			continue
		}
		out = append(out, int(v))
	}
	return out
}
