package state

import "github.com/cory-johannsen/countdown/internal/game/selection"

// Rig forces the selection, target and screen so scoring can be tested
// against known hands.
func (g *Game) Rig(sel selection.Selection, target int, screen Screen) {
	g.sel = sel
	g.target = target
	g.screen = screen
}
