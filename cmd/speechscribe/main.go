package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
)

type CLI struct {
	Config    string `help:"Path to the YAML config file." default:"config.yaml" type:"path"`
	EnvFile   string `help:"Dotenv file loaded before the config." default:".env" name:"env-file"`
	LogLevel  string `help:"Override logging.level." default:"" name:"log-level"`
	LogFormat string `help:"Override logging.format." default:"" name:"log-format"`

	Serve      ServeCmd      `cmd:"" help:"Run the web interface."`
	Watch      WatchCmd      `cmd:"" help:"Process audio and video files dropped into the input folder."`
	Resolve    ResolveCmd    `cmd:"" help:"Print the transcript of a video URL."`
	Transcribe TranscribeCmd `cmd:"" help:"Print the transcript of a local audio or video file."`
	Notes      NotesCmd      `cmd:"" help:"Generate structured notes from a transcript file."`
}

// Runtime is shared by every command.
type Runtime struct {
	Ctx    context.Context
	Config *config.Config
	Logger logger.Logger
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("speechscribe"),
		kong.Description("Turn recordings, uploads and video links into transcripts and structured notes."),
		kong.UsageOnError(),
	)

	if err := config.LoadDotEnv(cli.EnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", cli.EnvFile, err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cli.LogLevel != "" {
		cfg.Logging.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Logging.Format = cli.LogFormat
	}

	// Logs go to stderr so transcripts on stdout stay pipeable
	log := logger.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			log.Info(ctx, "Shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Debug(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	err = kctx.Run(&Runtime{Ctx: ctx, Config: cfg, Logger: log})
	kctx.FatalIfErrorf(err)
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
		cfg.Paths.Downloads,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
