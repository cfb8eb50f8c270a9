// Package config loads deckcritic settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dshills/deckcritic/internal/llm"
	"github.com/dshills/deckcritic/internal/logging"
)

// Config holds process-wide settings. Command-line flags override these.
type Config struct {
	Model       string
	Timeout     time.Duration
	ProfilesDir string
	LogLevel    string
	Threshold   int
	Concurrency int
	Redact      bool
	Keys        llm.Keys
}

// Load reads settings from the environment. Variables already set in
// the environment win over values from the env files. With no files,
// ./.env is read if it exists.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	file := map[string]string{}
	if len(envFiles) > 0 {
		m, err := godotenv.Read(envFiles...)
		if err != nil {
			return nil, fmt.Errorf("config.Load: %w", err)
		}
		file = m
	}
	env := source(file)

	cfg := &Config{
		Model:       env.get("DECKCRITIC_MODEL", ""),
		Timeout:     time.Duration(env.getInt("DECKCRITIC_TIMEOUT_SECONDS", 180)) * time.Second,
		ProfilesDir: env.get("DECKCRITIC_PROFILES_DIR", ""),
		LogLevel:    env.get("DECKCRITIC_LOG_LEVEL", "info"),
		Threshold:   env.getInt("DECKCRITIC_THRESHOLD", 60),
		Concurrency: env.getInt("DECKCRITIC_CONCURRENCY", 4),
		Redact:      env.getBool("DECKCRITIC_REDACT", true),
		Keys: llm.Keys{
			Anthropic: env.get("ANTHROPIC_API_KEY", ""),
			OpenAI:    env.get("OPENAI_API_KEY", ""),
			Gemini:    env.get("GEMINI_API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if c.Threshold < 0 || c.Threshold > 100 {
		errs = append(errs, fmt.Errorf("threshold must be within [0,100], got %d", c.Threshold))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// source looks a key up in the process environment, then the env file.
type source map[string]string

func (s source) get(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := s[key]; value != "" {
		return value
	}
	return defaultValue
}

func (s source) getInt(key string, defaultValue int) int {
	if value := s.get(key, ""); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func (s source) getBool(key string, defaultValue bool) bool {
	if value := s.get(key, ""); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
