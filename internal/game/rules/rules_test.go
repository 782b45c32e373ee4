package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/countdown/internal/game/pool"
	"github.com/cory-johannsen/countdown/internal/game/rules"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefault_IsValid(t *testing.T) {
	r := rules.Default()
	require.NoError(t, r.Validate())
	assert.Equal(t, []int{25, 50, 75, 100}, r.Large)
	assert.Equal(t, []int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10}, r.Small)
	assert.Equal(t, 100, r.TargetMin)
	assert.Equal(t, 999, r.TargetMax)
}

func TestValidate_Violations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*rules.Rules)
	}{
		{"short large", func(r *rules.Rules) { r.Large = r.Large[:3] }},
		{"long small", func(r *rules.Rules) { r.Small = append(r.Small, 1) }},
		{"zero value", func(r *rules.Rules) { r.Small[0] = 0 }},
		{"negative large", func(r *rules.Rules) { r.Large[1] = -25 }},
		{"target below three digits", func(r *rules.Rules) { r.TargetMin = 99 }},
		{"target above three digits", func(r *rules.Rules) { r.TargetMax = 1000 }},
		{"inverted range", func(r *rules.Rules) { r.TargetMin, r.TargetMax = 500, 400 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := rules.Default()
			tc.mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	writeFile(t, path, `
name: hard
large: [12, 37, 62, 87]
target_min: 500
`)
	r, err := rules.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hard", r.Name)
	assert.Equal(t, []int{12, 37, 62, 87}, r.Large)
	assert.Equal(t, rules.Default().Small, r.Small)
	assert.Equal(t, 500, r.TargetMin)
	assert.Equal(t, 999, r.TargetMax)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	writeFile(t, path, "large: [1, 2]\n")
	_, err := rules.Load(path)
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	writeFile(t, path, "large: [1, 2\n")
	_, err := rules.Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := rules.Load("/nonexistent/rules.yaml")
	assert.Error(t, err)
}

func TestNewPool(t *testing.T) {
	p, err := rules.Default().NewPool(pool.NewSeededSource(1))
	require.NoError(t, err)
	assert.Equal(t, pool.LargeCount, p.Remaining(pool.Large))
	assert.Equal(t, pool.SmallCount, p.Remaining(pool.Small))
}

// Property: Target always lands inside the configured range.
func TestPropertyTargetInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(100, 999).Draw(rt, "min")
		hi := rapid.IntRange(lo, 999).Draw(rt, "max")
		r := rules.Default()
		r.TargetMin, r.TargetMax = lo, hi
		got := r.Target(pool.NewSeededSource(rapid.Uint64().Draw(rt, "seed")))
		assert.GreaterOrEqual(rt, got, lo)
		assert.LessOrEqual(rt, got, hi)
	})
}
