package stt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/pkg/executor"
)

type whisperRecognizer struct {
	executor executor.Executor
	cfg      config.WhisperConfig
	tempDir  string
}

// NewWhisper returns a recognizer that runs the local whisper.cpp CLI.
func NewWhisper(exec executor.Executor, cfg config.WhisperConfig, tempDir string) Recognizer {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &whisperRecognizer{executor: exec, cfg: cfg, tempDir: tempDir}
}

func (w *whisperRecognizer) Name() string {
	return "whisper"
}

func (w *whisperRecognizer) Recognize(ctx context.Context, audioPath, locale string) (string, error) {
	// Whisper appends .txt to the output prefix
	outputPrefix := filepath.Join(w.tempDir, uuid.NewString())
	txtPath := outputPrefix + ".txt"
	defer os.Remove(txtPath)

	threads := w.cfg.Threads
	if threads <= 0 {
		threads = 4
	}

	// -otxt: plain text output, -nt: no timestamps, -bo 5: best of 5
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-nt",
		"-l", localeBase(locale),
		"-t", strconv.Itoa(threads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	text := strings.Join(strings.Fields(string(data)), " ")
	if text == "" {
		return "", ErrUnrecognized
	}
	return text, nil
}
