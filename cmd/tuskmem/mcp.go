package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/tuskmem/internal/transport/mcp"
	"github.com/sandevgo/tuskmem/pkg/log"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve memory tools over MCP stdio",
	Long:  `Speaks the Model Context Protocol on stdin/stdout. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		app, err := NewApp(ctx, setupOptions{})
		if err != nil {
			return err
		}
		defer func() { _ = app.Close(ctx) }()

		server, err := mcp.NewServer(app.Memory)
		if err != nil {
			return err
		}

		log.FromCtx(ctx).Info().Str("store", app.Config.GetStoreBackend()).Msg("mcp stdio server ready")
		return server.ServeStdio(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
