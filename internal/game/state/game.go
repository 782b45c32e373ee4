// Package state is the per-player game state machine: it owns the pool,
// selection, target and typed input of one game and scores the input on
// demand.
package state

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/countdown/internal/game/pool"
	"github.com/cory-johannsen/countdown/internal/game/rules"
	"github.com/cory-johannsen/countdown/internal/game/selection"
	"github.com/cory-johannsen/countdown/internal/game/solution"
)

// Screen is the stage of a game the player is on.
type Screen int

const (
	Introduction Screen = iota
	PickingNumbers
	Playing
	DisplayingResult
)

func (s Screen) String() string {
	switch s {
	case Introduction:
		return "introduction"
	case PickingNumbers:
		return "picking_numbers"
	case Playing:
		return "playing"
	case DisplayingResult:
		return "displaying_result"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// AllowedInput lists the characters a player may type into a solution.
const AllowedInput = "0123456789()+-*/ "

// Feedback is the score of the current input. Scored is false when the
// input does not produce a score.
type Feedback struct {
	Distance int
	Scored   bool
}

// Exact reports whether the input hits the target.
func (f Feedback) Exact() bool {
	return f.Scored && f.Distance == 0
}

// Game is one game from picking numbers to the result.
//
// Invariant: screen is Playing or DisplayingResult only when sel is complete.
type Game struct {
	id       uuid.UUID
	screen   Screen
	pool     *pool.Pool
	sel      selection.Selection
	target   int
	input    string
	feedback Feedback
	drawer   *pool.LoggedDrawer
	logger   *zap.Logger
}

// New builds a game from r with a freshly shuffled pool and a new target.
// The game starts on the Introduction screen.
//
// Precondition: r must be valid; src and logger must be non-nil.
// Postcondition: Returns a Game with an empty selection and input, or an error.
func New(r rules.Rules, src pool.Source, logger *zap.Logger) (*Game, error) {
	p, err := r.NewPool(src)
	if err != nil {
		return nil, fmt.Errorf("building pool: %w", err)
	}
	g := &Game{
		id:     uuid.New(),
		screen: Introduction,
		pool:   p,
		target: r.Target(src),
		drawer: pool.NewLoggedDrawer(src, logger),
		logger: logger,
	}
	logger.Debug("game created", zap.Stringer("game_id", g.id), zap.Int("target", g.target))
	return g, nil
}

// ID identifies the game.
func (g *Game) ID() uuid.UUID { return g.id }

// Screen returns the active screen.
func (g *Game) Screen() Screen { return g.screen }

// Target returns the target and whether it may be shown. The target is
// hidden while numbers are being picked.
func (g *Game) Target() (int, bool) {
	return g.target, g.screen != PickingNumbers
}

// Input returns the typed solution text.
func (g *Game) Input() string { return g.input }

// Selection returns a copy of the drawn numbers.
func (g *Game) Selection() selection.Selection { return g.sel }

// IsNumberSelectionComplete reports whether all six numbers are drawn.
func (g *Game) IsNumberSelectionComplete() bool { return g.sel.IsComplete() }

// Slots returns the occupancy of the kind inventory.
func (g *Game) Slots(kind pool.Kind) []pool.Slot { return g.pool.Slots(kind) }

// Feedback returns the score computed after the latest edit.
func (g *Game) Feedback() Feedback { return g.feedback }

// Advance moves Introduction to PickingNumbers, and PickingNumbers to Playing
// once the selection is complete.
//
// Postcondition: returns false with no effect on any other screen or when the
// selection is incomplete.
func (g *Game) Advance() bool {
	switch g.screen {
	case Introduction:
		g.setScreen(PickingNumbers)
		return true
	case PickingNumbers:
		if !g.sel.IsComplete() {
			return false
		}
		g.setScreen(Playing)
		return true
	default:
		return false
	}
}

// DrawLarge draws a large number into the selection.
func (g *Game) DrawLarge() (int, bool) { return g.draw(pool.Large) }

// DrawSmall draws a small number into the selection.
func (g *Game) DrawSmall() (int, bool) { return g.draw(pool.Small) }

// draw is a no-op unless numbers are being picked, the selection has room and
// the kind inventory is not exhausted.
func (g *Game) draw(kind pool.Kind) (int, bool) {
	if g.screen != PickingNumbers || g.sel.IsComplete() {
		return 0, false
	}
	v, ok := g.drawer.Draw(g.pool, kind)
	if !ok {
		return 0, false
	}
	g.sel.Push(v)
	return v, true
}

// Append adds c to the input and rescores it.
//
// Postcondition: returns false with no effect outside Playing or when c is not
// in AllowedInput.
func (g *Game) Append(c rune) bool {
	if g.screen != Playing || !strings.ContainsRune(AllowedInput, c) {
		return false
	}
	g.input += string(c)
	g.refresh()
	return true
}

// Backspace removes the last input character. Removing a space does not
// rescore, since spaces never change the score.
func (g *Game) Backspace() bool {
	if g.screen != Playing || g.input == "" {
		return false
	}
	last := g.input[len(g.input)-1]
	g.input = g.input[:len(g.input)-1]
	if last != ' ' {
		g.refresh()
	}
	return true
}

// Submit ends play. Any input, including an empty or invalid one, may be
// submitted.
func (g *Game) Submit() bool {
	if g.screen != Playing {
		return false
	}
	g.setScreen(DisplayingResult)
	return true
}

// CheckSolution scores the current input: the distance from the target, or
// ok == false when the input is blank, uses numbers that were not drawn, or
// does not evaluate. It does not modify the game and may be called any number
// of times.
func (g *Game) CheckSolution() (distance int, ok bool) {
	if strings.TrimSpace(g.input) == "" {
		return 0, false
	}
	return solution.Check(g.input, g.sel, g.target)
}

func (g *Game) refresh() {
	d, ok := g.CheckSolution()
	g.feedback = Feedback{Distance: d, Scored: ok}
}

func (g *Game) setScreen(s Screen) {
	g.logger.Debug("screen changed",
		zap.Stringer("game_id", g.id),
		zap.Stringer("from", g.screen),
		zap.Stringer("to", s),
	)
	g.screen = s
}
