package main

import (
	"context"
	"fmt"

	"github.com/yasmineatrous/Speechscribe/internal/captions"
	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/internal/llm"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/internal/media"
	"github.com/yasmineatrous/Speechscribe/internal/notes"
	"github.com/yasmineatrous/Speechscribe/internal/processor"
	"github.com/yasmineatrous/Speechscribe/internal/reconstruct"
	"github.com/yasmineatrous/Speechscribe/internal/resolver"
	"github.com/yasmineatrous/Speechscribe/internal/stt"
	"github.com/yasmineatrous/Speechscribe/pkg/executor"
)

// components is the fully wired application.
type components struct {
	files    processor.Processor
	resolver resolver.Resolver
	notes    notes.Generator
}

func wire(cfg *config.Config, log logger.Logger) (*components, error) {
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	exec := executor.New()
	for _, bin := range []string{cfg.Media.FFmpegPath, cfg.Media.YtDlpPath} {
		if bin != "" && !exec.LookPath(bin) {
			log.Warn(context.Background(), "%s not found on PATH, features that need it will fall back or fail", bin)
		}
	}

	backend, err := stt.New(cfg, exec, log)
	if err != nil {
		return nil, fmt.Errorf("create speech backend: %w", err)
	}
	completer, err := llm.New(cfg.LLM, log)
	if err != nil {
		return nil, fmt.Errorf("create completion client: %w", err)
	}

	extractor := media.NewExtractor(cfg, exec, log)
	generator := notes.New(cfg, completer, notes.NewTokenCounter(), log)

	res := resolver.New(cfg.Resolver.Order, resolver.Deps{
		Captions:      captions.New(captions.NewYtDlpSource(cfg, exec), log),
		Acquirer:      media.NewAcquirer(cfg, exec, log),
		Backend:       backend,
		Reconstructor: reconstruct.New(completer, nil, log),
	}, log)

	files := processor.New(cfg, processor.Deps{
		Extractor: extractor,
		Backend:   backend,
		Notes:     generator,
	}, log)

	return &components{files: files, resolver: res, notes: generator}, nil
}
