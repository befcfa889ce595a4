package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/sandevgo/tuskmem/internal/core"
	"github.com/sandevgo/tuskmem/internal/service/memory"
	"github.com/sandevgo/tuskmem/internal/transport/cli"
	"github.com/sandevgo/tuskmem/pkg/log"
)

var consolidateRecap bool

var consolidateCmd = &cobra.Command{
	Use:          "consolidate <userId> <transcript.json>",
	Short:        "Extract memories from a transcript and store them",
	Long:         `Reads a JSON transcript, either an array of {role, content} messages or {"messages": [...]}, and runs one consolidation cycle for the user.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		transcript, err := readTranscript(args[1])
		if err != nil {
			return err
		}

		app, err := NewApp(ctx, setupOptions{withLLM: true})
		if err != nil {
			return err
		}
		defer func() { _ = app.Close(ctx) }()

		set, err := app.Memory.Summarize(ctx, args[0], transcript)
		var invalid *memory.InvalidCandidateError
		if errors.As(err, &invalid) {
			log.FromCtx(ctx).Warn().Int("rejected", len(invalid.Rejected)).Msg("some extracted facts were invalid")
		} else if err != nil {
			return err
		}

		if err := cli.WriteMemorySet(cmd.OutOrStdout(), set, time.Now()); err != nil {
			return err
		}

		if consolidateRecap && app.Recap != nil {
			r, err := app.Recap.Recap(ctx, transcript)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return cli.WriteRecap(cmd.OutOrStdout(), r)
		}
		return nil
	},
}

func readTranscript(path string) ([]core.Message, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var msgs []core.Message
	if err := json.Unmarshal(raw, &msgs); err == nil {
		return msgs, nil
	}

	var wrapped struct {
		Messages []core.Message `json:"messages"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	if wrapped.Messages == nil {
		return nil, fmt.Errorf("parse transcript %s: no messages", path)
	}
	return wrapped.Messages, nil
}

func init() {
	consolidateCmd.Flags().BoolVar(&consolidateRecap, "recap", false, "also print a daily recap of the transcript")
	rootCmd.AddCommand(consolidateCmd)
}
