package telnet

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"
)

// Telnet IAC (Interpret As Command) constants per RFC 854.
const (
	IAC  byte = 255 // Interpret As Command
	DONT byte = 254
	DO   byte = 253
	WONT byte = 252
	WILL byte = 251
	SB   byte = 250 // Sub-negotiation Begin
	GA   byte = 249 // Go Ahead
	IP   byte = 244 // Interrupt Process
	NOP  byte = 241
	SE   byte = 240 // Sub-negotiation End

	OptEcho            byte = 1
	OptSuppressGoAhead byte = 3
	OptLinemode        byte = 34
)

const (
	esc       byte = 0x1b
	del       byte = 0x7f
	backspace byte = 0x08
	ctrlC     byte = 0x03
	ctrlD     byte = 0x04
)

// Conn wraps a TCP connection in character mode: the server echoes, the
// client sends each key as it is pressed, and input is read one key at a time.
type Conn struct {
	raw    net.Conn
	reader *bufio.Reader
	mu     sync.Mutex

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewConn wraps a raw TCP connection with Telnet protocol handling.
//
// Precondition: raw must be a valid, open network connection.
// Postcondition: Returns a Conn ready for reading and writing.
func NewConn(raw net.Conn, readTimeout, writeTimeout time.Duration) *Conn {
	return &Conn{
		raw:          raw,
		reader:       bufio.NewReaderSize(raw, 4096),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Negotiate switches the client into character mode: the server takes over
// echo and both sides suppress go-ahead.
//
// Postcondition: Negotiation bytes are written to the connection.
func (c *Conn) Negotiate() error {
	return c.Write([]byte{
		IAC, WILL, OptEcho,
		IAC, WILL, OptSuppressGoAhead,
		IAC, DO, OptSuppressGoAhead,
	})
}

// ReadKey blocks for the next key press. Telnet commands and terminal escape
// sequences such as arrow keys are consumed and skipped; a lone escape byte is
// reported as KeyEscape.
//
// Postcondition: Returns the next key, or an error (including io.EOF and
// read timeouts).
func (c *Conn) ReadKey() (Key, error) {
	if c.readTimeout > 0 {
		_ = c.raw.SetReadDeadline(time.Now().Add(c.readTimeout))
	}

	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return Key{}, err
		}

		switch {
		case b == IAC:
			cmd, err := c.handleIAC()
			if err != nil {
				return Key{}, err
			}
			if cmd == IP {
				return Key{Kind: KeyInterrupt}, nil
			}
		case b == '\r':
			// Clients send CR LF or CR NUL for Enter.
			c.skipBuffered('\n', 0)
			return Key{Kind: KeyEnter}, nil
		case b == '\n':
			return Key{Kind: KeyEnter}, nil
		case b == del || b == backspace:
			return Key{Kind: KeyBackspace}, nil
		case b == ctrlC || b == ctrlD:
			return Key{Kind: KeyInterrupt}, nil
		case b == esc:
			if c.skipEscapeSequence() {
				continue
			}
			return Key{Kind: KeyEscape}, nil
		case b < 0x20:
			continue
		case b < 0x80:
			return RuneKey(rune(b)), nil
		default:
			_ = c.reader.UnreadByte()
			r, _, err := c.reader.ReadRune()
			if err != nil {
				return Key{}, err
			}
			return RuneKey(r), nil
		}
	}
}

// skipBuffered consumes the next byte if it is already buffered and is one of
// the given bytes. It never blocks.
func (c *Conn) skipBuffered(candidates ...byte) {
	if c.reader.Buffered() == 0 {
		return
	}
	next, err := c.reader.Peek(1)
	if err != nil {
		return
	}
	for _, cand := range candidates {
		if next[0] == cand {
			_, _ = c.reader.ReadByte()
			return
		}
	}
}

// skipEscapeSequence consumes a CSI (ESC [) or SS3 (ESC O) sequence that
// arrived together with its escape byte. It reports whether one was consumed.
func (c *Conn) skipEscapeSequence() bool {
	if c.reader.Buffered() == 0 {
		return false
	}
	next, err := c.reader.Peek(1)
	if err != nil || (next[0] != '[' && next[0] != 'O') {
		return false
	}
	_, _ = c.reader.ReadByte()
	for c.reader.Buffered() > 0 {
		b, err := c.reader.ReadByte()
		if err != nil || isCSIFinal(b) {
			break
		}
	}
	return true
}

// handleIAC processes a Telnet IAC sequence after the initial IAC byte
// has been read and returns the command byte.
func (c *Conn) handleIAC() (byte, error) {
	cmd, err := c.reader.ReadByte()
	if err != nil {
		return 0, err
	}

	switch cmd {
	case WILL, WONT, DO, DONT:
		_, err := c.reader.ReadByte()
		return cmd, err
	case SB:
		for {
			b, err := c.reader.ReadByte()
			if err != nil {
				return cmd, err
			}
			if b != IAC {
				continue
			}
			next, err := c.reader.ReadByte()
			if err != nil {
				return cmd, err
			}
			if next == SE {
				return cmd, nil
			}
		}
	default:
		return cmd, nil
	}
}

// WriteScreen clears the client terminal and draws text from the top-left
// corner. Bare "\n" line breaks are sent as "\r\n".
func (c *Conn) WriteScreen(text string) error {
	return c.Write([]byte(CursorHome + ClearScreen + crlf(text)))
}

// WriteLine sends a line of text followed by \r\n to the client.
//
// Precondition: text should not contain trailing newline characters.
// Postcondition: text + \r\n is written to the connection.
func (c *Conn) WriteLine(text string) error {
	return c.Write([]byte(fmt.Sprintf("%s\r\n", text)))
}

// Write sends raw bytes to the client.
//
// Postcondition: The data is written to the connection.
func (c *Conn) Write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writeTimeout > 0 {
		_ = c.raw.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	_, err := c.raw.Write(data)
	return err
}

// Close closes the underlying TCP connection.
//
// Postcondition: The connection is closed and no longer usable.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// RemoteAddr returns the remote network address of the client.
func (c *Conn) RemoteAddr() net.Addr {
	return c.raw.RemoteAddr()
}

func crlf(text string) string {
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", "\r\n")
}

// FilterIAC removes Telnet IAC sequences from raw bytes, such as the
// negotiation a client receives ahead of the first screen.
//
// Postcondition: Returns input with all IAC sequences removed.
func FilterIAC(input []byte) []byte {
	result := make([]byte, 0, len(input))
	i := 0
	for i < len(input) {
		if input[i] == IAC && i+1 < len(input) {
			switch input[i+1] {
			case WILL, WONT, DO, DONT:
				i += 3
				continue
			case SB:
				j := i + 2
				for j < len(input)-1 {
					if input[j] == IAC && input[j+1] == SE {
						j += 2
						break
					}
					j++
				}
				i = j
				continue
			case IAC:
				result = append(result, IAC)
				i += 2
				continue
			default:
				i += 2
				continue
			}
		}
		result = append(result, input[i])
		i++
	}
	return result
}
