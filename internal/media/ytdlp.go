package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// audioFormat prefers the smallest audio-only stream; bitrate does not
// improve recognition.
const audioFormat = "worstaudio/worst[filesize<50M]/bestaudio/best"

type probeInfo struct {
	Title          string  `json:"title"`
	Duration       float64 `json:"duration"`
	FileSize       int64   `json:"filesize"`
	FileSizeApprox float64 `json:"filesize_approx"`
}

func (p probeInfo) size() int64 {
	if p.FileSize > 0 {
		return p.FileSize
	}
	return int64(p.FileSizeApprox)
}

// Acquire probes and downloads url, retrying failed attempts. An oversized
// video fails at once without downloading.
func (a *implAcquirer) Acquire(ctx context.Context, url string) (*Download, error) {
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return nil, transcript.AsFailure(fmt.Errorf("create download dir: %w", err))
	}

	id := uuid.NewString()
	var lastErr error
	for attempt := 1; attempt <= a.attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, transcript.AsFailure(ctx.Err())
			case <-time.After(a.retryDelay):
			}
		}

		dl, err := a.try(ctx, url, id)
		if err == nil {
			a.logger.Info(ctx, "Downloaded %s (%d bytes) on attempt %d", url, dl.SizeBytes, attempt)
			return dl, nil
		}
		a.removePartial(id)

		var f *transcript.Failure
		if errors.As(err, &f) && f.Kind == transcript.TooLarge {
			return nil, f
		}
		lastErr = err
		a.logger.Warn(ctx, "Download attempt %d/%d failed: %v", attempt, a.attempts, err)
	}

	return nil, transcript.AsFailure(fmt.Errorf("download failed after %d attempts: %w", a.attempts, lastErr))
}

func (a *implAcquirer) try(ctx context.Context, url, id string) (*Download, error) {
	info, err := a.probe(ctx, url)
	if err != nil {
		return nil, err
	}
	if size := info.size(); a.maxBytes > 0 && size > a.maxBytes {
		return nil, transcript.NewFailure(transcript.TooLarge,
			"video is about %d MB, the limit is %d MB", size/megabyte, a.maxBytes/megabyte)
	}

	output := filepath.Join(a.dir, id+".%(ext)s")
	args := []string{
		"--no-playlist",
		"--no-progress",
		"-f", audioFormat,
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "128K",
		"--socket-timeout", a.socketSeconds(),
		"-o", output,
		url,
	}
	if _, err := a.executor.Execute(ctx, a.binary, args...); err != nil {
		return nil, fmt.Errorf("yt-dlp download: %w", err)
	}

	path, err := a.findOutput(id)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat download: %w", err)
	}
	if stat.Size() == 0 {
		return nil, fmt.Errorf("downloaded file is empty")
	}

	return &Download{Path: path, SizeBytes: stat.Size(), Title: info.Title}, nil
}

func (a *implAcquirer) probe(ctx context.Context, url string) (probeInfo, error) {
	out, err := a.executor.Execute(ctx, a.binary,
		"-J",
		"--no-playlist",
		"--socket-timeout", a.socketSeconds(),
		url,
	)
	if err != nil {
		return probeInfo{}, fmt.Errorf("yt-dlp probe: %w", err)
	}

	var info probeInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return probeInfo{}, fmt.Errorf("parse yt-dlp metadata: %w", err)
	}
	return info, nil
}

// findOutput returns the extracted file for id, preferring the mp3.
func (a *implAcquirer) findOutput(id string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(a.dir, id+".*"))
	if err != nil {
		return "", fmt.Errorf("find download: %w", err)
	}
	var fallback string
	for _, m := range matches {
		if strings.HasSuffix(m, ".part") || strings.HasSuffix(m, ".ytdl") {
			continue
		}
		if strings.EqualFold(filepath.Ext(m), ".mp3") {
			return m, nil
		}
		fallback = m
	}
	if fallback == "" {
		return "", fmt.Errorf("yt-dlp produced no audio file")
	}
	return fallback, nil
}

func (a *implAcquirer) removePartial(id string) {
	matches, _ := filepath.Glob(filepath.Join(a.dir, id+".*"))
	for _, m := range matches {
		os.Remove(m)
	}
}

func (a *implAcquirer) socketSeconds() string {
	secs := int(a.socketTimeout.Seconds())
	if secs <= 0 {
		secs = 30
	}
	return strconv.Itoa(secs)
}
