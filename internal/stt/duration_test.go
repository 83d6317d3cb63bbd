package stt

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

func TestWAVProbe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	writeWAV(t, path, 2, 8000)

	d, err := WAVProbe{}.Duration(context.Background(), path)
	if err != nil {
		t.Fatalf("Duration() error = %v", err)
	}
	if math.Abs(d-2) > 0.01 {
		t.Errorf("Duration() = %v, want 2", d)
	}

	notWAV := filepath.Join(t.TempDir(), "a.mp3")
	os.WriteFile(notWAV, []byte("ID3 not a riff file"), 0644)
	if _, err := (WAVProbe{}).Duration(context.Background(), notWAV); err == nil {
		t.Error("Duration() should fail for a non-wav file")
	}
}

func TestEstimateDuration(t *testing.T) {
	if got := EstimateDuration(megabyte); got != 60 {
		t.Errorf("EstimateDuration(1MB) = %v, want 60", got)
	}
	if got := EstimateDuration(megabyte / 2); got != 30 {
		t.Errorf("EstimateDuration(0.5MB) = %v, want 30", got)
	}
}

func TestFFprobe(t *testing.T) {
	exec := &fakeExecutor{run: func(name string, args []string) (string, error) {
		return "312.480000\n", nil
	}}
	d, err := NewFFprobe(exec, "").Duration(context.Background(), "x.mp3")
	if err != nil {
		t.Fatalf("Duration() error = %v", err)
	}
	if d != 312.48 {
		t.Errorf("Duration() = %v, want 312.48", d)
	}
	if exec.calls[0][0] != "ffprobe" {
		t.Errorf("binary = %s, want ffprobe", exec.calls[0][0])
	}

	bad := &fakeExecutor{run: func(string, []string) (string, error) { return "N/A", nil }}
	if _, err := NewFFprobe(bad, "").Duration(context.Background(), "x.mp3"); err == nil {
		t.Error("Duration() should fail on unparsable output")
	}
}

func TestChainProbe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp3")
	os.WriteFile(path, make([]byte, megabyte), 0644)

	failing := NewFFprobe(&fakeExecutor{run: func(string, []string) (string, error) {
		return "", errors.New("ffprobe missing")
	}}, "")

	d, err := ChainProbe{WAVProbe{}, failing, EstimateProbe{}}.Duration(context.Background(), path)
	if err != nil {
		t.Fatalf("Duration() error = %v", err)
	}
	if d != 60 {
		t.Errorf("Duration() = %v, want the 60s estimate", d)
	}

	if _, err := (ChainProbe{WAVProbe{}, failing}).Duration(context.Background(), path); err == nil {
		t.Error("Duration() should fail when every probe fails")
	}
}

func TestWAVSlicer(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.wav")
	writeWAV(t, src, 3, 8000)

	s := &WAVSlicer{}
	dst := filepath.Join(dir, "slice.wav")
	if err := s.Slice(context.Background(), src, transcript.ChunkSpec{Start: 1, End: 2.5}, dst); err != nil {
		t.Fatalf("Slice() error = %v", err)
	}

	d, err := WAVProbe{}.Duration(context.Background(), dst)
	if err != nil {
		t.Fatalf("Duration() error = %v", err)
	}
	if math.Abs(d-1.5) > 0.01 {
		t.Errorf("slice duration = %v, want 1.5", d)
	}

	if err := s.Slice(context.Background(), src, transcript.ChunkSpec{Start: 10, End: 12}, dst); err == nil {
		t.Error("Slice() should fail outside the recording")
	}
}

func TestSlicerFallsBackToFFmpeg(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.mp3")
	os.WriteFile(src, []byte("mp3"), 0644)

	exec := &fakeExecutor{}
	dst := filepath.Join(dir, "out.wav")
	if err := NewSlicer(exec, "ffmpeg").Slice(context.Background(), src, transcript.ChunkSpec{Start: 28, End: 58}, dst); err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("ffmpeg calls = %d, want 1", len(exec.calls))
	}
	args := exec.calls[0][1:]
	if argAfter(args, "-ss") != "28.000" || argAfter(args, "-t") != "30.000" {
		t.Errorf("ffmpeg args = %v, want -ss 28.000 -t 30.000", args)
	}
	if args[len(args)-1] != dst {
		t.Errorf("output = %s, want %s", args[len(args)-1], dst)
	}
}

func TestWAVSlicerSourceRewritten(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "talk.wav")
	dst := filepath.Join(dir, "slice.wav")
	writeWAV(t, src, 60, 8000)

	s := &WAVSlicer{}
	if err := s.Slice(context.Background(), src, transcript.ChunkSpec{Start: 0, End: 2}, dst); err != nil {
		t.Fatalf("Slice() error = %v", err)
	}

	// a new recording dropped under the same name
	writeWAV(t, src, 3, 8000)
	if err := s.Slice(context.Background(), src, transcript.ChunkSpec{Start: 28, End: 58}, dst); err == nil {
		t.Error("Slice() cut a window from the previous recording")
	}
	if err := s.Slice(context.Background(), src, transcript.ChunkSpec{Start: 1, End: 3}, dst); err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	d, err := WAVProbe{}.Duration(context.Background(), dst)
	if err != nil {
		t.Fatalf("Duration() error = %v", err)
	}
	if math.Abs(d-2) > 0.01 {
		t.Errorf("slice duration = %v, want 2", d)
	}
}

func TestWAVSlicerRelease(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.wav")
	writeWAV(t, src, 2, 8000)

	s := &WAVSlicer{}
	if err := s.Slice(context.Background(), src, transcript.ChunkSpec{Start: 0, End: 1}, filepath.Join(dir, "s.wav")); err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	if len(s.sources) != 1 {
		t.Fatalf("cached sources = %d, want 1", len(s.sources))
	}
	s.Release(src)
	if len(s.sources) != 0 {
		t.Errorf("cached sources after Release = %d, want 0", len(s.sources))
	}
}

func TestTranscribeChunkedReleasesSlicer(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "long.wav")
	writeWAV(t, src, 70, 8000)

	slicer := NewSlicer(&fakeExecutor{}, "ffmpeg").(*autoSlicer)
	rec := &fakeRecognizer{answer: func(path, locale string) (string, error) { return "words", nil }}
	out := newTestBackend(rec, slicer, 1024, dir).Transcribe(context.Background(), src)
	if !out.OK() {
		t.Fatalf("Transcribe() failed: %v", out.Failure())
	}
	if n := len(slicer.wav.sources); n != 0 {
		t.Errorf("cached sources after Transcribe = %d, want 0", n)
	}
}
