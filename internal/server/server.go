// Package server exposes the palette engine as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/huekit/internal/extract"
	"github.com/jmylchreest/huekit/internal/gradient"
	imageutil "github.com/jmylchreest/huekit/internal/image"
	"github.com/jmylchreest/huekit/internal/palette"
	"github.com/jmylchreest/huekit/internal/random"
	httputil "github.com/jmylchreest/huekit/internal/util/http"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxUpload caps multipart image uploads.
	DefaultMaxUpload = 16 << 20

	shutdownTimeout = 5 * time.Second
)

// Config wires a Server. Rand is wrapped in a lock since handlers run
// concurrently. A supplied Extractor should fetch with DenyPrivate set;
// the default one does.
type Config struct {
	Addr      string
	Debug     bool
	Logger    hclog.Logger
	Rand      random.Source
	Extractor *extract.Extractor
	MaxUpload int64
}

// Server owns the gin engine and the engine components behind it.
type Server struct {
	addr      string
	logger    hclog.Logger
	engine    *gin.Engine
	palettes  *palette.Generator
	gradients *gradient.Builder
	extractor *extract.Extractor
	maxUpload int64
}

// New builds a server with every route registered.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.Rand == nil {
		cfg.Rand = random.NewRandom()
	}
	if cfg.MaxUpload <= 0 {
		cfg.MaxUpload = DefaultMaxUpload
	}
	rng := random.NewLocked(cfg.Rand)
	if cfg.Extractor == nil {
		cfg.Extractor = extract.New(extract.Config{
			Loader: &imageutil.SmartLoader{Fetch: httputil.FetchOptions{DenyPrivate: true}},
			Rand:   rng,
			Logger: cfg.Logger,
		})
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		addr:      cfg.Addr,
		logger:    cfg.Logger.Named("http"),
		engine:    gin.New(),
		palettes:  palette.NewGenerator(rng),
		gradients: gradient.NewBuilder(rng),
		extractor: cfg.Extractor,
		maxUpload: cfg.MaxUpload,
	}
	s.engine.Use(gin.Recovery(), RequestLogger(s.logger))
	s.routes()
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/health", s.health)
	r.GET("/usecases", s.useCases)

	r.GET("/palettes", s.generatePalettes)
	r.GET("/palettes/premade", s.premade)
	r.GET("/palettes/explore", s.explore)
	r.POST("/palettes/regenerate", s.regenerate)

	r.GET("/harmony", s.getHarmony)

	r.GET("/gradients/random", s.randomGradient)
	r.POST("/gradients/css", s.gradientCSS)
	r.POST("/gradients/from-palette", s.gradientFromPalette)

	r.GET("/contrast", s.getContrast)
	r.POST("/extract", s.postExtract)
	r.POST("/export", s.postExport)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
