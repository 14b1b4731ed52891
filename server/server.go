// Package server serves the spin delay endpoint that reels.HTTPDelayProvider
// consumes, for local development and tests without the hosted backend.
package server

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config controls the range of delays handed out.
type Config struct {
	Addr     string  `yaml:"addr"`
	Path     string  `yaml:"path"`
	MinDelay float64 `yaml:"min_delay"`
	MaxDelay float64 `yaml:"max_delay"`
}

// DefaultConfig matches the hosted endpoint's shape: GET /server on :8080,
// delays between 0.5 and 3.
func DefaultConfig() Config {
	return Config{Addr: ":8080", Path: "/server", MinDelay: 0.5, MaxDelay: 3}
}

// Validate reports a config that cannot produce positive delays.
func (c Config) Validate() error {
	if c.MinDelay <= 0 {
		return fmt.Errorf("min_delay must be positive, got %g", c.MinDelay)
	}
	if c.MaxDelay < c.MinDelay {
		return fmt.Errorf("max_delay %g is below min_delay %g", c.MaxDelay, c.MinDelay)
	}
	if c.Path == "" || c.Path[0] != '/' {
		return fmt.Errorf("path must start with '/', got %q", c.Path)
	}
	return nil
}

// DelayResponse is the body of a delay response.
type DelayResponse struct {
	Delay float64 `json:"delay"`
}

// delaySource hands out uniform delays in [min, max]. *rand.Rand is not safe
// for concurrent use and handlers run concurrently, hence the mutex.
type delaySource struct {
	mu       sync.Mutex
	rng      *rand.Rand
	min, max float64
}

func (s *delaySource) next() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.min + s.rng.Float64()*(s.max-s.min)
}

// NewRouter builds the HTTP handler. A nil rng uses a randomly seeded source.
func NewRouter(cfg Config, rng *rand.Rand, log *zap.Logger) (chi.Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("delay server: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = zap.NewNop()
	}
	src := &delaySource{rng: rng, min: cfg.MinDelay, max: cfg.MaxDelay}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// The slot machine may run in a browser (wasm) on another origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	r.Get(cfg.Path, func(w http.ResponseWriter, req *http.Request) {
		d := src.next()
		log.Debug("delay served",
			zap.String("request_id", middleware.GetReqID(req.Context())),
			zap.Float64("delay", d))
		writeJSON(w, http.StatusOK, DelayResponse{Delay: d})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return r, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
