package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadDotEnv loads .env style files into the process environment. Missing
// files are ignored; existing variables are never overwritten.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

// Load reads a YAML config file, expands ${VAR} references, fills secrets
// from the environment, merges defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&cfg)
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyEnv fills secrets left empty by the file from well-known variables.
func applyEnv(c *Config) {
	setIfEmpty(&c.Server.SessionSecret, os.Getenv("SESSION_SECRET"))
	setIfEmpty(&c.STT.Google.APIKey, os.Getenv("GOOGLE_SPEECH_API_KEY"))
	setIfEmpty(&c.STT.OpenAI.APIKey, os.Getenv("OPENAI_API_KEY"))
	setIfEmpty(&c.STT.Groq.APIKey, os.Getenv("GROQ_API_KEY"))

	if len(c.LLM.APIKeys) > 0 {
		return
	}
	provider := c.LLM.Provider
	if provider == "" {
		provider = Defaults().LLM.Provider
	}
	var raw string
	switch provider {
	case "groq":
		raw = os.Getenv("GROQ_API_KEY")
	case "openai":
		raw = os.Getenv("OPENAI_API_KEY")
	case "gemini":
		raw = os.Getenv("GEMINI_API_KEYS")
	case "anthropic":
		raw = os.Getenv("ANTHROPIC_API_KEY")
	}
	c.LLM.APIKeys = splitKeys(raw)
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// splitKeys splits a comma separated key list, dropping blanks.
func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
