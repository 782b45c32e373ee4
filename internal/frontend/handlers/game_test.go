package handlers_test

import (
	"context"
	"errors"
	"io"
	"net"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/countdown/internal/config"
	"github.com/cory-johannsen/countdown/internal/frontend/handlers"
	"github.com/cory-johannsen/countdown/internal/frontend/telnet"
	"github.com/cory-johannsen/countdown/internal/game/rules"
	"github.com/cory-johannsen/countdown/internal/storage/results"
	"github.com/cory-johannsen/countdown/internal/testutil"
)

const wait = 3 * time.Second

// memoryStore is an in-process results.Store.
type memoryStore struct {
	mu      sync.Mutex
	saved   []results.Result
	saveErr error
}

func (m *memoryStore) Save(_ context.Context, r results.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, r)
	return nil
}

func (m *memoryStore) Recent(_ context.Context, limit int) ([]results.Result, error) {
	if err := results.CheckLimit(limit); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []results.Result
	for i := len(m.saved) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.saved[i])
	}
	return out, nil
}

func (m *memoryStore) all() []results.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]results.Result(nil), m.saved...)
}

func startServer(t *testing.T, store results.Store, opts handlers.Options) string {
	t.Helper()
	logger := zaptest.NewLogger(t)
	h := handlers.NewGameHandler(rules.Default(), store, opts, logger)
	acc := telnet.NewAcceptor(config.TelnetConfig{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Second,
	}, h, logger)

	go func() { _ = acc.ListenAndServe() }()
	require.Eventually(t, func() bool { return acc.Addr() != "" }, 2*time.Second, 10*time.Millisecond)
	t.Cleanup(acc.Stop)
	return acc.Addr()
}

var numbersLine = regexp.MustCompile(`Numbers: (\d+) (\d+) (\d+) (\d+) (\d+) (\d+)`)

// drawnNumbers returns the selection shown on the last screen in out.
func drawnNumbers(t *testing.T, out string) []int {
	t.Helper()
	matches := numbersLine.FindAllStringSubmatch(out, -1)
	require.NotEmpty(t, matches, "no complete selection in %q", out)
	last := matches[len(matches)-1]
	nums := make([]int, 0, 6)
	for _, s := range last[1:] {
		n, err := strconv.Atoi(s)
		require.NoError(t, err)
		nums = append(nums, n)
	}
	return nums
}

// pickSix draws two large and four small numbers and returns the selection.
func pickSix(t *testing.T, c *testutil.TelnetClient) []int {
	t.Helper()
	c.Send("]][[[[")
	out := c.ReadUntil("Press (Enter) to start", wait)
	return drawnNumbers(t, out)
}

func TestGameHandler_FullGame(t *testing.T) {
	store := &memoryStore{}
	fixed := time.Date(2026, 4, 5, 6, 7, 8, 0, time.UTC)
	addr := startServer(t, store, handlers.Options{Seed: 99, RecentLimit: 5, Now: func() time.Time { return fixed }})

	c := testutil.NewTelnetClient(t, addr)
	intro := c.ReadUntil("(q) to quit, (Enter) to start", wait)
	assert.Contains(t, intro, "Numbers Game")
	assert.NotContains(t, intro, "Recent games")

	c.Enter()
	picking := c.ReadUntil("Pick 6 numbers", wait)
	assert.Contains(t, picking, "Target: ???")

	nums := pickSix(t, c)

	c.Enter()
	c.ReadUntil("(Enter) to submit", wait)

	expr := strconv.Itoa(nums[0])
	c.Send(expr)
	c.Enter()
	result := c.ReadUntil("(Enter) to play again", wait)
	assert.Contains(t, result, "How did you do?")
	assert.Contains(t, result, "Your solution: "+expr)

	require.Eventually(t, func() bool { return len(store.all()) == 1 }, wait, 10*time.Millisecond)
	saved := store.all()[0]
	assert.Equal(t, fixed, saved.PlayedAt)
	assert.Equal(t, nums, saved.Numbers)
	assert.Equal(t, expr, saved.Expression)
	assert.True(t, saved.Scored)
	assert.GreaterOrEqual(t, saved.Target, 100)

	c.Enter()
	replay := c.ReadUntil("Pick 6 numbers", wait)
	assert.Contains(t, replay, "Pick some numbers")

	c.Send("q")
	c.ReadUntil("Goodbye", wait)
}

func TestGameHandler_TypingIsFiltered(t *testing.T) {
	addr := startServer(t, &memoryStore{}, handlers.Options{Seed: 3})
	c := testutil.NewTelnetClient(t, addr)
	c.ReadUntil("(Enter) to start", wait)
	c.Enter()
	c.ReadUntil("Pick 6 numbers", wait)
	pickSix(t, c)
	c.Enter()
	c.ReadUntil("(Enter) to submit", wait)

	c.Send("1x+a2")
	c.ReadUntil("1+2", wait)

	c.Send("\x7f\x7f*3")
	c.ReadUntil("1*3", wait)
	c.Enter()
	result := c.ReadUntil("(Enter) to play again", wait)
	assert.Contains(t, result, "Your solution: 1*3")
}

func TestGameHandler_RecentOnIntroduction(t *testing.T) {
	store := &memoryStore{saved: []results.Result{{
		ID:         uuid.New(),
		PlayedAt:   time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC),
		Target:     512,
		Numbers:    []int{100, 5, 2, 6, 3, 1},
		Expression: "100 * 5 + 6 * 2",
		Scored:     true,
	}}}
	addr := startServer(t, store, handlers.Options{RecentLimit: 3})

	c := testutil.NewTelnetClient(t, addr)
	intro := c.ReadUntil("(Enter) to start", wait)
	assert.Contains(t, intro, "Recent games:")
	assert.Contains(t, intro, "target 512  exact  100 * 5 + 6 * 2")
}

func TestGameHandler_EscapeQuits(t *testing.T) {
	addr := startServer(t, &memoryStore{}, handlers.Options{})
	c := testutil.NewTelnetClient(t, addr)
	c.ReadUntil("(Enter) to start", wait)
	c.Send("\x1b")
	c.ReadUntil("Goodbye", wait)
}

func TestGameHandler_SaveFailureKeepsPlaying(t *testing.T) {
	store := &memoryStore{saveErr: errors.New("disk full")}
	addr := startServer(t, store, handlers.Options{Seed: 5})
	c := testutil.NewTelnetClient(t, addr)
	c.ReadUntil("(Enter) to start", wait)
	c.Enter()
	c.ReadUntil("Pick 6 numbers", wait)
	pickSix(t, c)
	c.Enter()
	c.ReadUntil("(Enter) to submit", wait)
	c.Enter()
	result := c.ReadUntil("(Enter) to play again", wait)
	assert.Contains(t, result, "Unlucky!")
	assert.Empty(t, store.all())
}

func TestGameHandler_DisconnectEndsCleanly(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	go func() { _, _ = io.Copy(io.Discard, client) }()

	h := handlers.NewGameHandler(rules.Default(), results.Nop{}, handlers.Options{RecentLimit: 5}, zaptest.NewLogger(t))
	errCh := make(chan error, 1)
	go func() {
		errCh <- h.HandleSession(context.Background(), telnet.NewConn(server, wait, wait))
	}()

	time.Sleep(50 * time.Millisecond)
	_ = client.Close()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(wait):
		t.Fatal("session did not end after the client hung up")
	}
}
