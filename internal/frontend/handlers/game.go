// Package handlers runs one game per Telnet connection: it turns key presses
// into game commands and redraws the screen after each of them.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/countdown/internal/frontend/telnet"
	"github.com/cory-johannsen/countdown/internal/game/pool"
	"github.com/cory-johannsen/countdown/internal/game/rules"
	"github.com/cory-johannsen/countdown/internal/game/state"
	"github.com/cory-johannsen/countdown/internal/observability"
	"github.com/cory-johannsen/countdown/internal/storage/results"
)

// storeTimeout bounds every results store call made during a session.
const storeTimeout = 5 * time.Second

// Options tune a GameHandler.
type Options struct {
	// Seed makes every session deal the same games when non-zero.
	Seed uint64
	// RecentLimit is how many recent results the introduction lists; zero hides them.
	RecentLimit int
	// Now stamps saved results; defaults to time.Now.
	Now func() time.Time
}

// GameHandler implements telnet.SessionHandler for the numbers game.
type GameHandler struct {
	rules  rules.Rules
	store  results.Store
	opts   Options
	logger *zap.Logger
}

// NewGameHandler creates a handler that deals games from r and records
// submitted games in store.
//
// Precondition: r must be valid; store and logger must be non-nil.
func NewGameHandler(r rules.Rules, store results.Store, opts Options, logger *zap.Logger) *GameHandler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &GameHandler{rules: r, store: store, opts: opts, logger: logger}
}

func (h *GameHandler) source() pool.Source {
	if h.opts.Seed != 0 {
		return pool.NewSeededSource(h.opts.Seed)
	}
	return pool.NewCryptoSource()
}

// HandleSession plays games with one client until it quits, disconnects or
// ctx ends. A client quitting or hanging up ends the session without error.
func (h *GameHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	logger := observability.ForSession(h.logger, uuid.NewString(), conn.RemoteAddr().String())

	sess, err := state.NewSession(h.rules, h.source(), logger)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	recent := h.recent(ctx, logger)
	logger.Info("session started", zap.Stringer("game_id", sess.Game().ID()))

	for {
		if err := conn.WriteScreen(RenderView(sess.Game().View(), recent)); err != nil {
			return fmt.Errorf("drawing screen: %w", err)
		}

		key, err := conn.ReadKey()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				logger.Info("client disconnected", zap.Int("games_played", sess.Played()))
				return nil
			}
			return fmt.Errorf("reading key: %w", err)
		}

		cmd := CommandFor(key)
		if cmd == CmdQuit {
			logger.Info("player quit", zap.Int("games_played", sess.Played()))
			_ = conn.Write([]byte(telnet.ShowCursor))
			_ = conn.WriteLine("")
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "Thanks for playing. Goodbye!"))
			return nil
		}
		if err := h.apply(ctx, sess, cmd, key, logger); err != nil {
			return err
		}
	}
}

// apply runs cmd against the live game of sess.
func (h *GameHandler) apply(ctx context.Context, sess *state.Session, cmd Command, key telnet.Key, logger *zap.Logger) error {
	g := sess.Game()
	switch cmd {
	case CmdDrawLarge:
		g.DrawLarge()
	case CmdDrawSmall:
		g.DrawSmall()
	case CmdBackspace:
		g.Backspace()
	case CmdType:
		g.Append(key.Rune)
	case CmdEnter:
		return h.enter(ctx, sess, logger)
	}
	return nil
}

func (h *GameHandler) enter(ctx context.Context, sess *state.Session, logger *zap.Logger) error {
	g := sess.Game()
	switch g.Screen() {
	case state.Introduction, state.PickingNumbers:
		g.Advance()
	case state.Playing:
		g.Submit()
		h.record(ctx, g, logger)
	case state.DisplayingResult:
		if _, err := sess.NewGame(); err != nil {
			return err
		}
		logger.Info("new game", zap.Stringer("game_id", sess.Game().ID()))
	}
	return nil
}

// record saves a submitted game. A store failure is logged and play goes on.
func (h *GameHandler) record(ctx context.Context, g *state.Game, logger *zap.Logger) {
	res, err := results.FromGame(g, h.opts.Now())
	if err != nil {
		logger.Error("capturing result", zap.Error(err))
		return
	}
	logger.Info("game submitted",
		zap.Stringer("game_id", res.ID),
		zap.Int("target", res.Target),
		zap.Ints("numbers", res.Numbers),
		zap.String("expression", res.Expression),
		zap.Bool("scored", res.Scored),
		zap.Int("distance", res.Distance),
	)

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := h.store.Save(ctx, res); err != nil {
		logger.Warn("saving result", zap.Stringer("game_id", res.ID), zap.Error(err))
	}
}

// recent loads the results listed on the introduction screen. Failures are
// logged and leave the list empty.
func (h *GameHandler) recent(ctx context.Context, logger *zap.Logger) []results.Result {
	if h.opts.RecentLimit < 1 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	list, err := h.store.Recent(ctx, h.opts.RecentLimit)
	if err != nil {
		logger.Warn("loading recent results", zap.Error(err))
		return nil
	}
	return list
}
