package testutil

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/cory-johannsen/countdown/internal/frontend/telnet"
)

// TelnetClient is a character-mode Telnet test client: every Send is a burst
// of key presses.
type TelnetClient struct {
	conn net.Conn
	t    *testing.T
}

// NewTelnetClient dials the given address and returns a test client.
//
// Precondition: addr must be a valid "host:port" string with a listening server.
// Postcondition: Returns a connected TelnetClient or fails the test.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	start := time.Now()

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v [%s]", addr, err, time.Since(start))
	}

	t.Cleanup(func() {
		conn.Close()
	})

	t.Logf("telnet client connected to %s [%s]", addr, time.Since(start))
	return &TelnetClient{conn: conn, t: t}
}

// ReadUntil reads until the plain text of the output, with Telnet commands
// and ANSI sequences removed, contains substr. It returns that plain text.
//
// Precondition: substr must be non-empty.
// Postcondition: Returns the accumulated plain output containing substr, or
// fails on timeout.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))

	var raw []byte
	tmp := make([]byte, 4096)
	for {
		n, err := c.conn.Read(tmp)
		if n > 0 {
			raw = append(raw, tmp[:n]...)
			plain := telnet.StripANSI(string(telnet.FilterIAC(raw)))
			if strings.Contains(plain, substr) {
				return plain
			}
		}
		if err != nil {
			c.t.Fatalf("reading until %q: got %q, error: %v", substr, telnet.StripANSI(string(raw)), err)
		}
	}
}

// Send writes keys to the server exactly as given.
func (c *TelnetClient) Send(keys string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := c.conn.Write([]byte(keys)); err != nil {
		c.t.Fatalf("sending %q: %v", keys, err)
	}
}

// Enter presses Enter.
func (c *TelnetClient) Enter() {
	c.t.Helper()
	c.Send("\r")
}

// Close closes the underlying connection.
func (c *TelnetClient) Close() {
	c.conn.Close()
}
