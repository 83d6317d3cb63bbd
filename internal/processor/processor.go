package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Process orchestrates the inbox pipeline for one file
func (p *implProcessor) Process(ctx context.Context, path string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting processing: %s", path)
	p.logger.Info(ctx, "========================================")

	// Step 1: Transcribe (extracting audio from video first)
	result := p.Transcribe(ctx, path)
	if !result.OK() {
		return fmt.Errorf("transcribe: %w", result.Err())
	}
	p.logger.Info(ctx, "Transcript ready (%d chars)", len(result.Text()))

	// Step 2: Generate notes
	if p.notes == nil {
		return fmt.Errorf("generate notes: no notes generator configured")
	}
	notes, err := p.notes.Generate(ctx, result.Text())
	if err != nil {
		return fmt.Errorf("generate notes: %w", err)
	}

	// Step 3: Write transcript, markdown, pdf and docx
	out, err := p.writeOutputs(ctx, name, result.Text(), notes)
	if err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	// Step 4: Move original to archived folder
	if _, err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Notes: %s", out.Markdown)
	p.logger.Info(ctx, "Documents: %s, %s", out.PDF, out.DOCX)
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return nil
}
