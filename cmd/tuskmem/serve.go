package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/sandevgo/tuskmem/internal/transport/api"
	"github.com/sandevgo/tuskmem/internal/transport/mcp"
	"github.com/sandevgo/tuskmem/pkg/log"
	"github.com/sandevgo/tuskmem/pkg/srv"
)

var (
	serveAddr string
	serveMCP  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the memory HTTP API",
	Long:  `Starts the HTTP API (and optionally MCP over streamable HTTP at /mcp) and blocks until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting tuskmem")

		app, err := NewApp(ctx, setupOptions{withLLM: true})
		if err != nil {
			return err
		}

		addr := app.Config.GetHTTPAddr()
		if serveAddr != "" {
			addr = serveAddr
		}

		router := chi.NewRouter()
		if serveMCP {
			mcpServer, err := mcp.NewServer(app.Memory)
			if err != nil {
				_ = app.Close(ctx)
				return err
			}
			router.Handle("/mcp", mcpServer.Handler())
		}
		router.Mount("/", api.NewHandler(app.Memory, app.Recap).Router(ctx))

		// shutdown runs in reverse, so the server drains before the store closes
		services := append(append([]srv.Service{}, app.Cleanups...), srv.NewHTTPServer(addr, router))
		errs := srv.StartServices(ctx, services)

		select {
		case <-ctx.Done():
		case err = <-errs:
		}

		if shutdownErr := srv.ShutdownServices(ctx, services); shutdownErr != nil && err == nil {
			err = shutdownErr
		}
		logger.Info().Msg("tuskmem has been shut down gracefully")
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides TUSKMEM_HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serveMCP, "mcp", false, "also serve MCP tools at /mcp")
	rootCmd.AddCommand(serveCmd)
}
