package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"xwinpong/internal/ansii"
	"xwinpong/internal/config"
	"xwinpong/internal/game"
	"xwinpong/internal/input"
	"xwinpong/internal/logging"
	"xwinpong/internal/pong"
	"xwinpong/internal/x11"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	command := filepath.Base(args[0])

	a, err := config.ParseArgs(args[1:])
	if errors.Is(err, config.ErrUsage) {
		fmt.Fprintf(os.Stderr, "%s: %v\n", command, err)
		config.Usage(os.Stderr, command)
		return 2
	}

	if err := play(a); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 1
	}
	return 0
}

func play(a *config.Args) error {
	cfg, err := config.Load(a.ConfigPath, a.ConfigExplicit)
	if err != nil {
		return err
	}
	a.Apply(cfg)

	log := logging.New(cfg.Logging, os.Stderr).With(zap.String("session", uuid.NewString()))
	defer log.Sync()

	for _, w := range a.Warnings {
		log.Warn(w)
	}
	for _, w := range cfg.Validate() {
		log.Warn(w)
	}

	bindings, err := input.LoadBindingsFile(cfg.Keymap)
	if err != nil {
		return err
	}

	backend, err := x11.Connect(cfg.Display, log)
	if err != nil {
		return err
	}

	g, err := game.New(backend, cfg, bindings, log)
	if err != nil {
		backend.Close()
		return err
	}
	defer g.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// A paused game blocks waiting for events; closing the connection wakes it.
	unblock := context.AfterFunc(ctx, func() { backend.Close() })
	defer unblock()

	reason, err := g.Run(ctx)
	log.Debug("game over", zap.Stringer("reason", reason))
	if err != nil {
		return fmt.Errorf("%s: %w", reason, err)
	}

	if o := reason.Outcome(); o != pong.InPlay {
		return ansii.Announce(os.Stdout, o, ansii.IsTerminal(os.Stdout))
	}
	return nil
}
