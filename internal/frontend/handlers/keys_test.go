package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/countdown/internal/frontend/telnet"
	"github.com/cory-johannsen/countdown/internal/game/state"
)

func TestCommandFor(t *testing.T) {
	cases := []struct {
		key  telnet.Key
		want Command
	}{
		{telnet.Key{Kind: telnet.KeyEscape}, CmdQuit},
		{telnet.Key{Kind: telnet.KeyInterrupt}, CmdQuit},
		{telnet.RuneKey('q'), CmdQuit},
		{telnet.RuneKey('Q'), CmdQuit},
		{telnet.Key{Kind: telnet.KeyEnter}, CmdEnter},
		{telnet.Key{Kind: telnet.KeyBackspace}, CmdBackspace},
		{telnet.RuneKey(']'), CmdDrawLarge},
		{telnet.RuneKey('['), CmdDrawSmall},
		{telnet.RuneKey('7'), CmdType},
		{telnet.RuneKey('x'), CmdType},
		{telnet.Key{Kind: 99}, CmdNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CommandFor(tc.key), tc.key.String())
	}
}

// Property: every character a player may type into a solution reaches the
// game as input, so no solution character is shadowed by a key binding.
func TestPropertyAllowedInputIsTyped(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := rapid.SampledFrom([]rune(state.AllowedInput)).Draw(rt, "rune")
		assert.Equal(rt, CmdType, CommandFor(telnet.RuneKey(r)))
	})
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "draw_large", CmdDrawLarge.String())
	assert.Equal(t, "quit", CmdQuit.String())
	assert.Equal(t, "command(42)", Command(42).String())
}
