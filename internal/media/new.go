package media

import (
	"os"
	"time"

	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/pkg/executor"
)

const megabyte = 1024 * 1024

type implAcquirer struct {
	executor      executor.Executor
	logger        logger.Logger
	binary        string
	dir           string
	maxBytes      int64
	attempts      int
	retryDelay    time.Duration
	socketTimeout time.Duration
}

// NewAcquirer creates an Acquirer backed by yt-dlp.
func NewAcquirer(cfg *config.Config, exec executor.Executor, log logger.Logger) Acquirer {
	a := &implAcquirer{
		executor:      exec,
		logger:        log,
		binary:        cfg.Media.YtDlpPath,
		dir:           cfg.Paths.Downloads,
		maxBytes:      int64(cfg.Media.MaxDownloadMB) * megabyte,
		attempts:      cfg.Media.Attempts,
		retryDelay:    cfg.Media.RetryDelay,
		socketTimeout: cfg.Media.SocketTimeout,
	}
	if a.binary == "" {
		a.binary = "yt-dlp"
	}
	if a.dir == "" {
		a.dir = os.TempDir()
	}
	if a.attempts <= 0 {
		a.attempts = 1
	}
	return a
}

type implExtractor struct {
	executor     executor.Executor
	logger       logger.Logger
	binary       string
	tempDir      string
	timeout      time.Duration
	uploadCap    time.Duration
	largeUploadB int64
}

// NewExtractor creates an Extractor that prefers ffmpeg and falls back to
// in-process decoding.
func NewExtractor(cfg *config.Config, exec executor.Executor, log logger.Logger) Extractor {
	e := &implExtractor{
		executor:     exec,
		logger:       log,
		binary:       cfg.Media.FFmpegPath,
		tempDir:      cfg.Paths.Temp,
		timeout:      cfg.Media.ExtractTimeout,
		uploadCap:    cfg.Media.UploadCap,
		largeUploadB: int64(cfg.Media.LargeUploadMB) * megabyte,
	}
	if e.binary == "" {
		e.binary = "ffmpeg"
	}
	if e.tempDir == "" {
		e.tempDir = os.TempDir()
	}
	if e.timeout <= 0 {
		e.timeout = 5 * time.Minute
	}
	return e
}
