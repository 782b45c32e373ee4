package state

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/countdown/internal/game/pool"
	"github.com/cory-johannsen/countdown/internal/game/rules"
	"github.com/cory-johannsen/countdown/internal/game/selection"
)

// Session holds the single live Game of one player and replaces it on replay.
type Session struct {
	rules  rules.Rules
	src    pool.Source
	logger *zap.Logger
	game   *Game
	played int
}

// NewSession starts a session on the Introduction screen of a new game.
//
// Precondition: r must be valid; src and logger must be non-nil.
func NewSession(r rules.Rules, src pool.Source, logger *zap.Logger) (*Session, error) {
	g, err := New(r, src, logger)
	if err != nil {
		return nil, err
	}
	return &Session{rules: r, src: src, logger: logger, game: g}, nil
}

// Game returns the live game.
func (s *Session) Game() *Game { return s.game }

// Played returns the number of games replaced by NewGame.
func (s *Session) Played() int { return s.played }

// NewGame discards the finished game and starts a new one on PickingNumbers.
// The new game is fully built before it replaces the old one.
//
// Postcondition: returns false with no effect unless the live game is on
// DisplayingResult.
func (s *Session) NewGame() (bool, error) {
	if s.game.Screen() != DisplayingResult {
		return false, nil
	}
	g, err := New(s.rules, s.src, s.logger)
	if err != nil {
		return false, fmt.Errorf("starting new game: %w", err)
	}
	g.screen = PickingNumbers
	s.game = g
	s.played++
	return true, nil
}

// View is a read-only snapshot of a game for renderers. Target is zero while
// it is hidden.
type View struct {
	GameID        string
	Screen        Screen
	Large         []pool.Slot
	Small         []pool.Slot
	Selected      []int
	Target        int
	TargetVisible bool
	Input         string
	Feedback      Feedback
	Complete      bool
}

// Slot returns the selected value at i and whether that slot is filled.
func (v View) Slot(i int) (int, bool) {
	if i < 0 || i >= len(v.Selected) {
		return 0, false
	}
	return v.Selected[i], true
}

// SelectionSize is the number of slots a renderer should draw.
func (v View) SelectionSize() int { return selection.Size }

// View snapshots g.
func (g *Game) View() View {
	target, visible := g.Target()
	if !visible {
		target = 0
	}
	return View{
		GameID:        g.id.String(),
		Screen:        g.screen,
		Large:         g.pool.Slots(pool.Large),
		Small:         g.pool.Slots(pool.Small),
		Selected:      g.sel.Values(),
		Target:        target,
		TargetVisible: visible,
		Input:         g.input,
		Feedback:      g.feedback,
		Complete:      g.sel.IsComplete(),
	}
}
