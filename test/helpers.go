package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"

	"github.com/sandevgo/tuskmem/internal/config"
)

// LoadEnv loads the runtime .env file when one exists, so live tests see the
// same settings as tuskmem itself.
func LoadEnv(t *testing.T) {
	t.Helper()

	envFile := filepath.Join(config.GetRuntimePath(), ".env")
	if _, err := os.Stat(envFile); err != nil {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		t.Fatalf("failed to load %s: %v", envFile, err)
	}
}

// RequireEnv skips the test unless key is set.
func RequireEnv(t *testing.T, key string) string {
	t.Helper()

	v := os.Getenv(key)
	if v == "" {
		t.Skipf("%s is not set", key)
	}
	return v
}
