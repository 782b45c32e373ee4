// Package rules defines the number inventories and target range a game is
// dealt from, loaded from YAML content.
package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/countdown/internal/game/pool"
)

// Rules is the content a new game is built from.
type Rules struct {
	Name      string `yaml:"name"`
	Large     []int  `yaml:"large"`
	Small     []int  `yaml:"small"`
	TargetMin int    `yaml:"target_min"`
	TargetMax int    `yaml:"target_max"`
}

// Default returns the classic rules: 25, 50, 75 and 100 as large numbers, two
// of each of 1 through 10 as small numbers, and a three-digit target.
func Default() Rules {
	small := make([]int, 0, pool.SmallCount)
	for v := 1; v <= 10; v++ {
		small = append(small, v, v)
	}
	return Rules{
		Name:      "classic",
		Large:     []int{25, 50, 75, 100},
		Small:     small,
		TargetMin: 100,
		TargetMax: 999,
	}
}

// Validate checks the inventory sizes, value signs and target range.
//
// Postcondition: Returns nil if valid, or an error naming every violation.
func (r Rules) Validate() error {
	var errs []string
	if len(r.Large) != pool.LargeCount {
		errs = append(errs, fmt.Sprintf("large must list %d numbers, got %d", pool.LargeCount, len(r.Large)))
	}
	if len(r.Small) != pool.SmallCount {
		errs = append(errs, fmt.Sprintf("small must list %d numbers, got %d", pool.SmallCount, len(r.Small)))
	}
	for i, v := range r.Large {
		if v <= 0 {
			errs = append(errs, fmt.Sprintf("large[%d] must be positive, got %d", i, v))
		}
	}
	for i, v := range r.Small {
		if v <= 0 {
			errs = append(errs, fmt.Sprintf("small[%d] must be positive, got %d", i, v))
		}
	}
	if r.TargetMin < 100 || r.TargetMax > 999 || r.TargetMin > r.TargetMax {
		errs = append(errs, fmt.Sprintf("target range must satisfy 100 <= target_min <= target_max <= 999, got %d..%d", r.TargetMin, r.TargetMax))
	}
	if len(errs) > 0 {
		return fmt.Errorf("rules validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Target picks a target uniformly from [TargetMin, TargetMax].
//
// Precondition: r must be valid; src must be non-nil.
func (r Rules) Target(src pool.Source) int {
	return r.TargetMin + src.Intn(r.TargetMax-r.TargetMin+1)
}

// NewPool builds a shuffled pool from the rules' inventories.
func (r Rules) NewPool(src pool.Source) (*pool.Pool, error) {
	return pool.New(r.Large, r.Small, src)
}

// Load reads a rules file. Fields missing from the file keep their Default values.
//
// Precondition: path must name a readable YAML file.
// Postcondition: Returns valid Rules or a non-nil error.
func Load(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading %s: %w", path, err)
	}
	r := Default()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	if err := r.Validate(); err != nil {
		return Rules{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
