// Slotmachine opens a window with five spinning reels. Click the label under
// the reels, or press Space, to spin. The spin duration comes from the delay
// server named in the config file.
//
//	slotmachine -config configs/machine.yaml
//	slotmachine -script configs/autoplay.json -quit -shots screenshots
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/phanxgames/reels"
	"github.com/phanxgames/reels/audio"
	"github.com/phanxgames/reels/internal/cli"
	"github.com/phanxgames/reels/render"
)

const windowTitle = "Reels"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "slotmachine: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "machine YAML file (defaults when empty)")
	assetRoot := flag.String("assets", ".", "directory the asset paths are relative to")
	scriptPath := flag.String("script", "", "autoplay script JSON file")
	quit := flag.Bool("quit", false, "exit when the autoplay script finishes")
	shotDir := flag.String("shots", "screenshots", "directory for script screenshots")
	debug := flag.Bool("debug", false, "debug logging, overlay and tween checks")
	mute := flag.Bool("mute", false, "disable sound")
	width := flag.Int("width", 1280, "initial window width")
	height := flag.Int("height", 960, "initial window height")
	flag.Parse()

	settings, err := cli.LoadSettings(*configPath)
	if err != nil {
		return err
	}
	cfg := settings.Machine
	if *debug {
		cfg.Debug = true
	}

	log, err := cli.NewLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	assets, err := render.LoadAssets(ctx, *assetRoot, cfg)
	if err != nil {
		return err
	}

	machine, err := reels.NewMachine(cfg, assets.Textures(), reels.Options{
		Provider: cli.Provider(cfg),
		Logger:   log.Named("machine"),
	})
	if err != nil {
		return err
	}

	opts := render.GameOptions{
		Machine:      machine,
		Clock:        reels.NewWallClock(),
		Assets:       assets,
		Logger:       log,
		QuitWhenDone: *quit,
		Screenshots:  render.NewScreenshots(*shotDir, log.Named("screenshot")),
	}

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := reels.LoadScript(data)
		if err != nil {
			return err
		}
		opts.Script = script
	}

	if settings.Audio.Enabled && !*mute {
		player, err := audio.NewSpeakerPlayer(settings.Audio, log.Named("audio"))
		if err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer player.Close()
			opts.Listeners = append(opts.Listeners, player)
		}
	}

	game, err := render.NewGame(ctx, opts)
	if err != nil {
		return err
	}
	log.Info("starting",
		zap.Int("reels", cfg.ReelCount),
		zap.String("delay_url", cfg.DelayURL),
		zap.Bool("script", opts.Script != nil),
	)
	return render.Run(game, render.RunConfig{Title: windowTitle, Width: *width, Height: *height})
}
