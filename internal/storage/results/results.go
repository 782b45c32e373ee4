// Package results records finished games for the recent results list.
package results

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/countdown/internal/game/state"
)

// ErrInvalidLimit is returned by Recent for a limit below one.
var ErrInvalidLimit = errors.New("results: limit must be at least 1")

// Result is one submitted game.
type Result struct {
	ID         uuid.UUID
	PlayedAt   time.Time
	Target     int
	Numbers    []int
	Expression string
	// Distance is meaningful only when Scored is true.
	Distance int
	Scored   bool
}

// Exact reports whether the expression hit the target.
func (r Result) Exact() bool {
	return r.Scored && r.Distance == 0
}

// Store persists results. Recent returns the newest results first.
type Store interface {
	Save(ctx context.Context, r Result) error
	Recent(ctx context.Context, limit int) ([]Result, error)
}

// FromGame captures a submitted game.
//
// Precondition: g must be on the DisplayingResult screen.
func FromGame(g *state.Game, playedAt time.Time) (Result, error) {
	if g.Screen() != state.DisplayingResult {
		return Result{}, fmt.Errorf("results: game %s is on %s, not submitted", g.ID(), g.Screen())
	}
	target, _ := g.Target()
	distance, scored := g.CheckSolution()
	return Result{
		ID:         g.ID(),
		PlayedAt:   playedAt.UTC(),
		Target:     target,
		Numbers:    g.Selection().Values(),
		Expression: g.Input(),
		Distance:   distance,
		Scored:     scored,
	}, nil
}

// CheckLimit validates a Recent limit.
func CheckLimit(limit int) error {
	if limit < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	return nil
}

// Nop discards results and never has any to list.
type Nop struct{}

// Save discards r.
func (Nop) Save(context.Context, Result) error { return nil }

// Recent returns no results.
func (Nop) Recent(_ context.Context, limit int) ([]Result, error) {
	if err := CheckLimit(limit); err != nil {
		return nil, err
	}
	return nil, nil
}
