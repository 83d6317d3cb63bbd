package stt

import (
	"fmt"
	"os"

	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/pkg/executor"
)

const megabyte = 1024 * 1024

// Options configures a Backend. Zero chunk values fall back to 30s windows
// with a 2s overlap.
type Options struct {
	Recognizer     Recognizer
	Probe          DurationProbe
	Slicer         Slicer
	Locales        []string
	ThresholdBytes int64
	ChunkSeconds   float64
	OverlapSeconds float64
	TempDir        string
}

type implBackend struct {
	recognizer Recognizer
	probe      DurationProbe
	slicer     Slicer
	locales    []string
	threshold  int64
	chunk      float64
	overlap    float64
	tempDir    string
	logger     logger.Logger
}

// NewBackend creates a Backend from explicit collaborators.
func NewBackend(opts Options, log logger.Logger) Backend {
	b := &implBackend{
		recognizer: opts.Recognizer,
		probe:      opts.Probe,
		slicer:     opts.Slicer,
		locales:    opts.Locales,
		threshold:  opts.ThresholdBytes,
		chunk:      opts.ChunkSeconds,
		overlap:    opts.OverlapSeconds,
		tempDir:    opts.TempDir,
		logger:     log,
	}
	if b.chunk <= 0 {
		b.chunk = 30
	}
	if b.overlap < 0 || b.overlap >= b.chunk {
		b.overlap = 2
	}
	if b.threshold <= 0 {
		b.threshold = 10 * megabyte
	}
	if len(b.locales) == 0 {
		b.locales = []string{"en-US"}
	}
	if b.probe == nil {
		b.probe = ChainProbe{WAVProbe{}, EstimateProbe{}}
	}
	if b.tempDir == "" {
		b.tempDir = os.TempDir()
	}
	return b
}

// New builds the configured recognizer and wires it into a Backend.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Backend, error) {
	rec, err := NewRecognizer(cfg.STT, cfg.Paths.Temp, exec)
	if err != nil {
		return nil, err
	}

	return NewBackend(Options{
		Recognizer: rec,
		Probe: ChainProbe{
			WAVProbe{},
			NewFFprobe(exec, cfg.Media.FFprobePath),
			EstimateProbe{},
		},
		Slicer:         NewSlicer(exec, cfg.Media.FFmpegPath),
		Locales:        cfg.STT.Locales,
		ThresholdBytes: int64(cfg.STT.ChunkThresholdMB) * megabyte,
		ChunkSeconds:   cfg.STT.ChunkSeconds,
		OverlapSeconds: cfg.STT.OverlapSeconds,
		TempDir:        cfg.Paths.Temp,
	}, log), nil
}

// NewRecognizer returns the recognizer selected by cfg.Provider.
func NewRecognizer(cfg config.STTConfig, tempDir string, exec executor.Executor) (Recognizer, error) {
	switch cfg.Provider {
	case "google":
		return NewGoogle(cfg.Google.APIKey, ""), nil
	case "openai":
		return NewOpenAI("openai", cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model), nil
	case "groq":
		return NewOpenAI("groq", cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Groq.Model), nil
	case "whisper":
		return NewWhisper(exec, cfg.Whisper, tempDir), nil
	default:
		return nil, fmt.Errorf("unknown stt provider %q", cfg.Provider)
	}
}
