package handlers

import (
	"fmt"

	"github.com/cory-johannsen/countdown/internal/frontend/telnet"
)

// Command is what a key press asks the game to do.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdEnter
	CmdDrawLarge
	CmdDrawSmall
	CmdBackspace
	CmdType
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdQuit:
		return "quit"
	case CmdEnter:
		return "enter"
	case CmdDrawLarge:
		return "draw_large"
	case CmdDrawSmall:
		return "draw_small"
	case CmdBackspace:
		return "backspace"
	case CmdType:
		return "type"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// CommandFor maps a key to its command. Esc, Ctrl-C and 'q' quit on every
// screen; any other printable key is offered to the input as CmdType and
// filtered by the game.
func CommandFor(k telnet.Key) Command {
	switch k.Kind {
	case telnet.KeyEscape, telnet.KeyInterrupt:
		return CmdQuit
	case telnet.KeyEnter:
		return CmdEnter
	case telnet.KeyBackspace:
		return CmdBackspace
	case telnet.KeyRune:
		switch k.Rune {
		case 'q', 'Q':
			return CmdQuit
		case ']':
			return CmdDrawLarge
		case '[':
			return CmdDrawSmall
		default:
			return CmdType
		}
	default:
		return CmdNone
	}
}
