package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandevgo/tuskmem/internal/transport/cli"
)

var showPrompt bool

var showCmd = &cobra.Command{
	Use:          "show <userId>",
	Short:        "Print what is remembered about a user",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		app, err := NewApp(ctx, setupOptions{})
		if err != nil {
			return err
		}
		defer func() { _ = app.Close(ctx) }()

		if showPrompt {
			prompt, err := app.Memory.Prompt(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		}

		set, err := app.Memory.Memory(ctx, args[0])
		if err != nil {
			return err
		}
		return cli.WriteMemorySet(cmd.OutOrStdout(), set, time.Now())
	},
}

func init() {
	showCmd.Flags().BoolVar(&showPrompt, "prompt", false, "print the rendered prompt fragment instead")
	rootCmd.AddCommand(showCmd)
}
