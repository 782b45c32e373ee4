package telnet

import "fmt"

// KeyKind classifies a key press read from a character-mode client.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyInterrupt
)

// Key is a single key press. Rune is set only for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

func (k Key) String() string {
	switch k.Kind {
	case KeyRune:
		return fmt.Sprintf("rune(%q)", k.Rune)
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyEscape:
		return "escape"
	case KeyInterrupt:
		return "interrupt"
	default:
		return fmt.Sprintf("key(%d)", int(k.Kind))
	}
}

// RuneKey returns the KeyRune press of r.
func RuneKey(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}
