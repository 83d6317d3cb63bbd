package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// CapFor limits large uploads to the configured cap.
func (e *implExtractor) CapFor(sizeBytes int64) time.Duration {
	if e.largeUploadB > 0 && sizeBytes > e.largeUploadB {
		return e.uploadCap
	}
	return 0
}

// ExtractAudio converts srcPath to 16kHz mono WAV in a new temporary file
// and returns its path. The caller removes the file.
func (e *implExtractor) ExtractAudio(ctx context.Context, srcPath string, opts ExtractOptions) (string, error) {
	dir := opts.OutputDir
	if dir == "" {
		dir = e.tempDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", transcript.AsFailure(fmt.Errorf("create temp dir: %w", err))
	}
	audioPath := filepath.Join(dir, uuid.NewString()+".wav")

	e.logger.Info(ctx, "Extracting audio: %s", srcPath)
	err := e.ffmpeg(ctx, srcPath, audioPath, opts.MaxDuration)
	if err == nil {
		e.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
		return audioPath, nil
	}
	os.Remove(audioPath)

	e.logger.Warn(ctx, "ffmpeg extraction failed, decoding in process: %v", err)
	if derr := decodeToWAV(srcPath, audioPath, opts.MaxDuration); derr != nil {
		os.Remove(audioPath)
		return "", transcript.AsFailure(derr)
	}
	e.logger.Info(ctx, "Audio decoded in process: %s", audioPath)
	return audioPath, nil
}

func (e *implExtractor) ffmpeg(ctx context.Context, srcPath, audioPath string, limit time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// -vn: drop video, -ar/-ac: 16kHz mono, pcm_s16le: uncompressed PCM
	args := []string{
		"-i", srcPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
	}
	if limit > 0 {
		args = append(args, "-t", strconv.Itoa(int(limit.Seconds())))
	}
	args = append(args, "-threads", "0", "-y", audioPath)

	if _, err := e.executor.Execute(ctx, e.binary, args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}
	return nil
}
