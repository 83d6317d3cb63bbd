package stt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-audio/wav"
	"github.com/yasmineatrous/Speechscribe/pkg/executor"
)

// WAVProbe reads the duration from a RIFF/WAVE header.
type WAVProbe struct{}

func (WAVProbe) Duration(ctx context.Context, path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("not a wav file: %s", path)
	}
	d, err := dec.Duration()
	if err != nil {
		return 0, fmt.Errorf("read wav duration: %w", err)
	}
	return d.Seconds(), nil
}

type ffprobeProbe struct {
	executor executor.Executor
	binary   string
}

// NewFFprobe returns a probe that asks ffprobe for the container duration.
func NewFFprobe(exec executor.Executor, binary string) DurationProbe {
	if binary == "" {
		binary = "ffprobe"
	}
	return ffprobeProbe{executor: exec, binary: binary}
}

func (p ffprobeProbe) Duration(ctx context.Context, path string) (float64, error) {
	out, err := p.executor.Execute(ctx, p.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("ffprobe duration: unexpected output %q", strings.TrimSpace(out))
	}
	return d, nil
}

// EstimateDuration guesses seconds from file size at roughly one minute
// per megabyte. It is a rough approximation with no accuracy guarantee.
func EstimateDuration(sizeBytes int64) float64 {
	return float64(sizeBytes) / megabyte * 60
}

// EstimateProbe applies EstimateDuration to the file size.
type EstimateProbe struct{}

func (EstimateProbe) Duration(ctx context.Context, path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat audio: %w", err)
	}
	if info.Size() == 0 {
		return 0, fmt.Errorf("audio file is empty: %s", path)
	}
	return EstimateDuration(info.Size()), nil
}

// ChainProbe returns the first duration any probe can determine.
type ChainProbe []DurationProbe

func (c ChainProbe) Duration(ctx context.Context, path string) (float64, error) {
	var errs []error
	for _, p := range c {
		d, err := p.Duration(ctx, path)
		if err == nil && d > 0 {
			return d, nil
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return 0, fmt.Errorf("no duration probe configured")
	}
	return 0, errors.Join(errs...)
}
