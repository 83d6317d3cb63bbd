package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Defaults()
	cfg.STT.Google.APIKey = "speech-key"
	cfg.LLM.APIKeys = []string{"llm-key"}
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing output path",
			mutate:  func(c *Config) { c.Paths.Output = "" },
			wantErr: true,
		},
		{
			name:    "unknown stt provider",
			mutate:  func(c *Config) { c.STT.Provider = "azure" },
			wantErr: true,
		},
		{
			name:    "google without key",
			mutate:  func(c *Config) { c.STT.Google.APIKey = "" },
			wantErr: true,
		},
		{
			name: "whisper needs model path",
			mutate: func(c *Config) {
				c.STT.Provider = "whisper"
				c.STT.Whisper.ModelPath = ""
			},
			wantErr: true,
		},
		{
			name:    "overlap not smaller than window",
			mutate:  func(c *Config) { c.STT.OverlapSeconds = 30 },
			wantErr: true,
		},
		{
			name:    "no locales",
			mutate:  func(c *Config) { c.STT.Locales = nil },
			wantErr: true,
		},
		{
			name:    "unknown llm provider",
			mutate:  func(c *Config) { c.LLM.Provider = "cohere" },
			wantErr: true,
		},
		{
			name:    "missing llm keys",
			mutate:  func(c *Config) { c.LLM.APIKeys = nil },
			wantErr: true,
		},
		{
			name:    "download first order",
			mutate:  func(c *Config) { c.Resolver.Order = []string{"download", "captions", "reconstruct"} },
			wantErr: false,
		},
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Resolver.Order = []string{"captions", "scrape"} },
			wantErr: true,
		},
		{
			name:    "duplicate strategy",
			mutate:  func(c *Config) { c.Resolver.Order = []string{"captions", "captions"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearSecrets(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SESSION_SECRET", "GOOGLE_SPEECH_API_KEY", "OPENAI_API_KEY", "GROQ_API_KEY", "GEMINI_API_KEYS", "ANTHROPIC_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	clearSecrets(t)
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("SPEECHSCRIBE_MODEL", "models/ggml-base.en.bin")

	path := writeConfig(t, `
paths:
  output: "out"
stt:
  provider: "whisper"
  whisper:
    model_path: "${SPEECHSCRIBE_MODEL}"
media:
  retry_delay: "500ms"
resolver:
  order: ["download", "captions"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.STT.Whisper.ModelPath != "models/ggml-base.en.bin" {
		t.Errorf("ModelPath = %v, want expanded env value", cfg.STT.Whisper.ModelPath)
	}
	if cfg.Paths.Output != "out" {
		t.Errorf("Output = %v, want %v", cfg.Paths.Output, "out")
	}
	if cfg.Paths.Temp != "data/temp" {
		t.Errorf("Temp = %v, want default %v", cfg.Paths.Temp, "data/temp")
	}
	if cfg.Media.RetryDelay != 500*time.Millisecond {
		t.Errorf("RetryDelay = %v, want %v", cfg.Media.RetryDelay, 500*time.Millisecond)
	}
	if cfg.Media.MaxDownloadMB != 500 || cfg.Media.Attempts != 4 {
		t.Errorf("media defaults not merged: %+v", cfg.Media)
	}
	if len(cfg.LLM.APIKeys) != 1 || cfg.LLM.APIKeys[0] != "gsk-test" {
		t.Errorf("APIKeys = %v, want [gsk-test]", cfg.LLM.APIKeys)
	}
	if got := cfg.Resolver.Order; len(got) != 2 || got[0] != "download" {
		t.Errorf("Order = %v, want file order kept", got)
	}
	if got := cfg.STT.Locales; len(got) != 3 || got[0] != "en-US" {
		t.Errorf("Locales = %v, want default locales", got)
	}
}

func TestLoadGeminiKeysFromEnv(t *testing.T) {
	clearSecrets(t)
	t.Setenv("GEMINI_API_KEYS", "k1, k2,,k3")
	t.Setenv("GOOGLE_SPEECH_API_KEY", "speech")

	path := writeConfig(t, `
llm:
  provider: "gemini"
  model: "gemini-2.5-flash"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.LLM.APIKeys) != 3 {
		t.Errorf("APIKeys = %v, want 3 keys", cfg.LLM.APIKeys)
	}
	if cfg.STT.Google.APIKey != "speech" {
		t.Errorf("Google.APIKey = %q, want %q", cfg.STT.Google.APIKey, "speech")
	}
}

func TestLoadMissingKey(t *testing.T) {
	clearSecrets(t)
	path := writeConfig(t, "paths:\n  output: out\n")

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail when no credentials are configured")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearSecrets(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ANTHROPIC_API_KEY=sk-ant-test\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides a variable that is already set
	os.Unsetenv("ANTHROPIC_API_KEY")

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("ANTHROPIC_API_KEY"); got != "sk-ant-test" {
		t.Errorf("ANTHROPIC_API_KEY = %q, want %q", got, "sk-ant-test")
	}
}
