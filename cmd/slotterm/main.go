// Slotterm runs the reels in a terminal. Space spins, q quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/phanxgames/reels"
	"github.com/phanxgames/reels/audio"
	"github.com/phanxgames/reels/internal/cli"
	"github.com/phanxgames/reels/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "slotterm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "machine YAML file (defaults when empty)")
	logPath := flag.String("log", "", "write logs to this file; the terminal is busy")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	settings, err := cli.LoadSettings(*configPath)
	if err != nil {
		return err
	}
	cfg := settings.Machine

	log := zap.NewNop()
	if *logPath != "" {
		zcfg := zap.NewDevelopmentConfig()
		zcfg.OutputPaths = []string{*logPath}
		zcfg.ErrorOutputPaths = []string{*logPath}
		if log, err = zcfg.Build(); err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
	}
	defer func() { _ = log.Sync() }()

	machine, err := reels.NewMachine(cfg, term.Textures(term.DefaultGlyphs()), reels.Options{
		Provider: cli.Provider(cfg),
		Logger:   log.Named("machine"),
	})
	if err != nil {
		return err
	}
	defer machine.Close()

	var listeners []term.Listener
	if settings.Audio.Enabled && !*mute {
		player, err := audio.NewSpeakerPlayer(settings.Audio, log.Named("audio"))
		if err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer player.Close()
			listeners = append(listeners, player)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = term.Run(ctx, screen, machine, reels.NewWallClock(), log, listeners...)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	log.Info("final reels", zap.String("symbols", term.Describe(machine)))
	return err
}
