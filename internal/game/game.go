// Package game runs the frame loop that keeps the windows, the simulation
// and the display server in step.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"xwinpong/internal/config"
	"xwinpong/internal/display"
	"xwinpong/internal/input"
	"xwinpong/internal/pong"
	"xwinpong/internal/renderer"
	"xwinpong/internal/window"
)

type Reason int

const (
	NotEnded Reason = iota
	UserClosed
	ConnectionLost
	LeftWins
	RightWins
)

func (r Reason) String() string {
	switch r {
	case NotEnded:
		return "not ended"
	case UserClosed:
		return "user closed"
	case ConnectionLost:
		return "connection lost"
	case LeftWins:
		return "left wins"
	case RightWins:
		return "right wins"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Outcome returns the winner for LeftWins and RightWins and pong.InPlay for
// every other reason.
func (r Reason) Outcome() pong.Outcome {
	switch r {
	case LeftWins:
		return pong.LeftWins
	case RightWins:
		return pong.RightWins
	}
	return pong.InPlay
}

type Game struct {
	backend  display.Backend
	log      *zap.Logger
	state    *pong.GameState
	bindings input.Bindings
	keysyms  *input.Keysyms
	pacer    *renderer.Pacer
	delta    float64

	left    *window.Window
	ball    *window.Window
	right   *window.Window
	windows []*window.Window

	paused bool
	reason Reason
	err    error
}

// New lays out the entities, creates and maps their windows and loads the
// keyboard mapping. Colors that cannot be allocated fall back to the screen's
// black and white pixels.
func New(b display.Backend, cfg *config.Config, bindings input.Bindings, log *zap.Logger) (*Game, error) {
	screen := b.Screen()
	g := &Game{
		backend:  b,
		log:      log,
		state:    pong.NewGameState(screen.Size(), cfg.PongTuning()),
		bindings: bindings,
		keysyms:  input.NewKeysyms(),
		pacer:    renderer.NewPacer(cfg.FPS),
		delta:    1 / float64(cfg.FPS),
	}

	count := int(screen.MaxKeycode) - int(screen.MinKeycode) + 1
	if err := g.keysyms.Refresh(b, screen.MinKeycode, count); err != nil {
		return nil, fmt.Errorf("keyboard mapping unavailable: %w", err)
	}

	if cfg.Tuning.RandomServe {
		g.state.Serve(rand.New(rand.NewSource(uint64(time.Now().UnixNano()))))
	}

	specs := []struct {
		entity *pong.Entity
		color  string
		pixel  uint32
		title  string
		slot   **window.Window
	}{
		{&g.state.Left, cfg.Colors.Left, screen.BlackPixel, "Left paddle", &g.left},
		{&g.state.Ball, cfg.Colors.Ball, screen.WhitePixel, "Xwinpong", &g.ball},
		{&g.state.Right, cfg.Colors.Right, screen.BlackPixel, "Right paddle", &g.right},
	}
	for _, s := range specs {
		w, err := window.New(b, s.entity, g.resolveColor(s.entity.Role, s.color, s.pixel), cfg.Borders)
		if err != nil {
			g.destroyWindows()
			return nil, err
		}
		*s.slot = w
		g.windows = append(g.windows, w)

		if err := w.Setup(s.title); err != nil {
			g.destroyWindows()
			return nil, fmt.Errorf("set hints for %s: %w", s.entity.Role, err)
		}
		w.Show()
	}

	if err := b.Flush(); err != nil {
		g.destroyWindows()
		return nil, err
	}

	log.Debug("game created",
		zap.Int("screen_width", screen.Width),
		zap.Int("screen_height", screen.Height),
		zap.Int("fps", cfg.FPS),
		zap.Bool("borders", cfg.Borders),
		zap.Int("ball_vx", g.state.Ball.Vel.X),
		zap.Int("ball_vy", g.state.Ball.Vel.Y),
	)
	return g, nil
}

func (g *Game) resolveColor(role pong.Role, name string, fallback uint32) uint32 {
	if name == "" {
		return fallback
	}
	pixel, err := g.backend.ResolveColor(name)
	if err != nil {
		g.log.Warn("failed to allocate color, using the default",
			zap.Stringer("entity", role),
			zap.String("color", name),
			zap.Error(err),
		)
		return fallback
	}
	return pixel
}

func (g *Game) State() *pong.GameState {
	return g.state
}

func (g *Game) Paused() bool {
	return g.paused
}

// Reason reports why the loop ended, or NotEnded while it is running.
func (g *Game) Reason() Reason {
	return g.reason
}

func (g *Game) end(r Reason, err error) {
	if g.reason != NotEnded {
		return
	}
	g.reason, g.err = r, err
	g.log.Debug("game ended", zap.Stringer("reason", r), zap.Error(err))
}

// Run iterates until the game ends or ctx is done. A connection that is lost
// after ctx is done counts as the user closing the game.
func (g *Game) Run(ctx context.Context) (Reason, error) {
	for g.reason == NotEnded {
		if ctx.Err() != nil {
			g.end(UserClosed, nil)
			break
		}
		g.Iterate()
	}
	if g.reason == ConnectionLost && ctx.Err() != nil {
		g.reason, g.err = UserClosed, nil
	}
	return g.reason, g.err
}

// Iterate runs one frame: drain events, check the connection, step the
// simulation, push positions and sleep out the rest of the frame.
func (g *Game) Iterate() {
	g.pacer.Begin()

	g.drain()
	if g.reason != NotEnded {
		return
	}

	if err := g.backend.Healthy(); err != nil {
		g.end(ConnectionLost, err)
		return
	}

	if g.paused {
		return
	}
	switch g.state.Step(g.delta) {
	case pong.LeftWins:
		g.end(LeftWins, nil)
		return
	case pong.RightWins:
		g.end(RightWins, nil)
		return
	}

	if err := renderer.Render(g.backend, g.windows...); err != nil {
		g.end(ConnectionLost, err)
		return
	}

	if spent := g.pacer.Wait(); spent > g.pacer.Frame {
		g.log.Debug("frame overran", zap.Duration("spent", spent), zap.Int("frame", g.pacer.Frames()))
	}
}

// Close destroys every window and closes the backend.
func (g *Game) Close() error {
	g.destroyWindows()
	return errors.Join(g.backend.Flush(), g.backend.Close())
}

func (g *Game) destroyWindows() {
	for _, w := range g.windows {
		w.Destroy()
	}
	g.windows = nil
}
