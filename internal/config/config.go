package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	STT         STTConfig         `yaml:"stt"`
	Media       MediaConfig       `yaml:"media"`
	Captions    CaptionsConfig    `yaml:"captions"`
	LLM         LLMConfig         `yaml:"llm"`
	Notes       NotesConfig       `yaml:"notes"`
	Resolver    ResolverConfig    `yaml:"resolver"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	BodyLimitMB   int           `yaml:"body_limit_mb"`
}

type PathsConfig struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Archived  string `yaml:"archived"`
	Temp      string `yaml:"temp"`
	Downloads string `yaml:"downloads"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type STTConfig struct {
	Provider         string        `yaml:"provider"` // google, openai, groq, whisper
	Locales          []string      `yaml:"locales"`
	ChunkThresholdMB int           `yaml:"chunk_threshold_mb"`
	ChunkSeconds     float64       `yaml:"chunk_seconds"`
	OverlapSeconds   float64       `yaml:"overlap_seconds"`
	Google           GoogleConfig  `yaml:"google"`
	OpenAI           OpenAIConfig  `yaml:"openai"`
	Groq             OpenAIConfig  `yaml:"groq"`
	Whisper          WhisperConfig `yaml:"whisper"`
}

type GoogleConfig struct {
	APIKey string `yaml:"api_key"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type MediaConfig struct {
	YtDlpPath      string        `yaml:"ytdlp_path"`
	FFmpegPath     string        `yaml:"ffmpeg_path"`
	FFprobePath    string        `yaml:"ffprobe_path"`
	MaxDownloadMB  int           `yaml:"max_download_mb"`
	Attempts       int           `yaml:"attempts"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	SocketTimeout  time.Duration `yaml:"socket_timeout"`
	ExtractTimeout time.Duration `yaml:"extract_timeout"`
	UploadCap      time.Duration `yaml:"upload_cap"`
	LargeUploadMB  int           `yaml:"large_upload_mb"`
}

type CaptionsConfig struct {
	Languages []string `yaml:"languages"`
}

type LLMConfig struct {
	Provider      string   `yaml:"provider"` // groq, openai, gemini, anthropic
	Model         string   `yaml:"model"`
	APIKeys       []string `yaml:"api_keys"`
	BaseURL       string   `yaml:"base_url"`
	Temperature   float32  `yaml:"temperature"`
	TopP          float32  `yaml:"top_p"`
	MaxTokens     int      `yaml:"max_tokens"`
	ContextTokens int      `yaml:"context_tokens"`
}

type NotesConfig struct {
	Title          string `yaml:"title"`
	MaxInputTokens int    `yaml:"max_input_tokens"`
}

type ResolverConfig struct {
	// Order lists the transcript strategies for video URLs: captions, download, reconstruct
	Order []string `yaml:"order"`
}

var (
	sttProviders = map[string]bool{"google": true, "openai": true, "groq": true, "whisper": true}
	llmProviders = map[string]bool{"groq": true, "openai": true, "gemini": true, "anthropic": true}
	strategies   = map[string]bool{"captions": true, "download": true, "reconstruct": true}
)

// Validate checks required fields. Defaults are expected to be merged already.
func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Paths.Temp == "" {
		return fmt.Errorf("paths.temp is required")
	}

	if !sttProviders[c.STT.Provider] {
		return fmt.Errorf("stt.provider %q is not supported", c.STT.Provider)
	}
	if len(c.STT.Locales) == 0 {
		return fmt.Errorf("stt.locales must not be empty")
	}
	if c.STT.OverlapSeconds >= c.STT.ChunkSeconds {
		return fmt.Errorf("stt.overlap_seconds must be smaller than stt.chunk_seconds")
	}
	switch c.STT.Provider {
	case "google":
		if c.STT.Google.APIKey == "" {
			return fmt.Errorf("stt.google.api_key is required")
		}
	case "openai":
		if c.STT.OpenAI.APIKey == "" {
			return fmt.Errorf("stt.openai.api_key is required")
		}
	case "groq":
		if c.STT.Groq.APIKey == "" {
			return fmt.Errorf("stt.groq.api_key is required")
		}
	case "whisper":
		if c.STT.Whisper.ModelPath == "" {
			return fmt.Errorf("stt.whisper.model_path is required")
		}
	}

	if !llmProviders[c.LLM.Provider] {
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if len(c.LLM.APIKeys) == 0 {
		return fmt.Errorf("llm.api_keys is required")
	}

	seen := make(map[string]bool)
	for _, name := range c.Resolver.Order {
		if !strategies[name] {
			return fmt.Errorf("resolver.order: unknown strategy %q", name)
		}
		if seen[name] {
			return fmt.Errorf("resolver.order: duplicate strategy %q", name)
		}
		seen[name] = true
	}

	return nil
}
