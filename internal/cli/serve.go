package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/huekit/internal/config"
	"github.com/jmylchreest/huekit/internal/random"
	"github.com/jmylchreest/huekit/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the palette engine over HTTP",
		Long: `Run a JSON HTTP API exposing palette generation, harmonies, gradients,
contrast checks, image extraction and exports.

Routes:
  GET  /health                    GET  /usecases
  GET  /palettes?usecase=&count=  GET  /palettes/premade
  GET  /palettes/explore?filter=  POST /palettes/regenerate
  GET  /harmony?base=&count=&scheme=
  GET  /gradients/random          POST /gradients/css
  POST /gradients/from-palette    GET  /contrast?fg=&bg=
  POST /extract?colours=          POST /export?format=`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", server.DefaultAddr, "listen address")
	cmd.Flags().String("server-mode", config.ServerModeRelease, "gin mode (release, debug)")
	addExtractFlags(cmd)
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}

	rng := random.NewLocked(a.rng)
	ex, err := newExtractor(a, rng, true)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:      a.cfg.Server.Addr,
		Debug:     a.cfg.Server.Mode == config.ServerModeDebug,
		Logger:    a.logger,
		Rand:      rng,
		Extractor: ex,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
