package config

import (
	"context"

	"github.com/caarlos0/env/v11"

	"github.com/sandevgo/tuskmem/pkg/log"
)

type LLMConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"openai"`
	Model    string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	APIKey   string `env:"LLM_API_KEY"`
	BaseURL  string `env:"LLM_BASE_URL"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

func (c LLMConfig) GetProvider() string { return c.Provider }
func (c LLMConfig) GetModel() string    { return c.Model }
func (c LLMConfig) GetAPIKey() string   { return c.APIKey }
func (c LLMConfig) GetBaseURL() string  { return c.BaseURL }
