package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sandevgo/tuskmem/internal/config"
	"github.com/sandevgo/tuskmem/pkg/env"
)

var (
	envUnmask bool
	envWrite  bool
)

// effectiveConfig groups every env-backed setting for rendering.
type effectiveConfig struct {
	App   *config.AppConfig
	LLM   *config.LLMConfig
	Redis *config.RedisConfig
}

var envCmd = &cobra.Command{
	Use:          "env",
	Short:        "Print the effective configuration in .env format",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}

		app := config.NewAppConfig(ctx)
		cfg := effectiveConfig{
			App:   app,
			LLM:   config.NewLLMConfig(ctx),
			Redis: config.NewRedisConfig(ctx),
		}

		if envWrite {
			return writeEnvFile(app.GetEnvPath(), &cfg)
		}

		var opts []env.Option
		if !envUnmask {
			opts = append(opts, env.WithMaskedSecrets())
		}
		out, err := renderConfig(&cfg, opts...)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func renderConfig(cfg *effectiveConfig, opts ...env.Option) (string, error) {
	var out string
	for _, part := range []any{cfg.App, cfg.LLM, cfg.Redis} {
		s, err := env.MarshalEnv(part, opts...)
		if err != nil {
			return "", err
		}
		out += s
	}
	return out, nil
}

// writeEnvFile persists the configuration, refusing to replace an existing
// file. The result is parsed back to make sure godotenv can load it.
func writeEnvFile(path string, cfg *effectiveConfig) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf(".env file already exists at %s", path)
	}

	content, err := renderConfig(cfg)
	if err != nil {
		return err
	}
	if _, err := godotenv.Unmarshal(content); err != nil {
		return fmt.Errorf("rendered config is not loadable: %w", err)
	}

	if err := os.MkdirAll(cfg.App.GetRuntimePath(), 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0600)
}

func init() {
	envCmd.Flags().BoolVar(&envUnmask, "unmask", false, "print secrets in clear text")
	envCmd.Flags().BoolVar(&envWrite, "write", false, "write the configuration to the runtime .env file")
	rootCmd.AddCommand(envCmd)
}
