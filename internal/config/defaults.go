package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Defaults returns the baseline configuration merged under every loaded file.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":5000",
			SessionTTL:  24 * time.Hour,
			BodyLimitMB: 100,
		},
		Paths: PathsConfig{
			Input:     "data/input",
			Output:    "data/output",
			Archived:  "data/archived",
			Temp:      "data/temp",
			Downloads: "data/downloads",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Performance: PerformanceConfig{
			MaxConcurrent: 2,
		},
		STT: STTConfig{
			Provider:         "google",
			Locales:          []string{"en-US", "en-GB", "en-AU"},
			ChunkThresholdMB: 10,
			ChunkSeconds:     30,
			OverlapSeconds:   2,
			OpenAI:           OpenAIConfig{Model: "whisper-1"},
			Groq:             OpenAIConfig{Model: "whisper-large-v3", BaseURL: "https://api.groq.com/openai/v1"},
			Whisper:          WhisperConfig{BinaryPath: "whisper-cli", Threads: 4},
		},
		Media: MediaConfig{
			YtDlpPath:      "yt-dlp",
			FFmpegPath:     "ffmpeg",
			FFprobePath:    "ffprobe",
			MaxDownloadMB:  500,
			Attempts:       4,
			RetryDelay:     2 * time.Second,
			SocketTimeout:  30 * time.Second,
			ExtractTimeout: 5 * time.Minute,
			UploadCap:      10 * time.Minute,
			LargeUploadMB:  50,
		},
		Captions: CaptionsConfig{
			Languages: []string{"en"},
		},
		LLM: LLMConfig{
			Provider:      "groq",
			Model:         "llama3-70b-8192",
			Temperature:   0.1,
			TopP:          0.9,
			MaxTokens:     4096,
			ContextTokens: 8192,
		},
		Notes: NotesConfig{
			Title:          "Structured Notes",
			MaxInputTokens: 6000,
		},
		Resolver: ResolverConfig{
			Order: []string{"captions", "download", "reconstruct"},
		},
	}
}

// applyDefaults fills every zero-valued field of c from Defaults().
func applyDefaults(c *Config) error {
	if err := mergo.Merge(c, Defaults()); err != nil {
		return fmt.Errorf("merge defaults: %w", err)
	}
	return nil
}
