package captions

import (
	"os"

	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/pkg/executor"
)

type implFetcher struct {
	source Source
	logger logger.Logger
}

// New creates a Fetcher over the given Source.
func New(source Source, log logger.Logger) Fetcher {
	return &implFetcher{source: source, logger: log}
}

type ytdlpSource struct {
	executor  executor.Executor
	binary    string
	tempDir   string
	languages []string
}

// NewYtDlpSource returns a Source that downloads json3 subtitles with yt-dlp.
func NewYtDlpSource(cfg *config.Config, exec executor.Executor) Source {
	s := &ytdlpSource{
		executor:  exec,
		binary:    cfg.Media.YtDlpPath,
		tempDir:   cfg.Paths.Temp,
		languages: cfg.Captions.Languages,
	}
	if s.binary == "" {
		s.binary = "yt-dlp"
	}
	if s.tempDir == "" {
		s.tempDir = os.TempDir()
	}
	if len(s.languages) == 0 {
		s.languages = []string{"en"}
	}
	return s
}
