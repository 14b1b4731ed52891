// Delayserver answers GET /server with a random spin delay, for running the
// reels without the remote test endpoint.
//
//	delayserver -config configs/delayserver.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/reels/internal/cli"
	"github.com/phanxgames/reels/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "delayserver: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (server.Config, error) {
	cfg := server.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func run() error {
	configPath := flag.String("config", "", "server YAML file (defaults when empty)")
	addr := flag.String("addr", "", "listen address, overrides the config")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	log, err := cli.NewLogger(*debug)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	router, err := server.NewRouter(cfg, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("path", cfg.Path))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
