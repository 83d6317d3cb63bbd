package stt

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// writeWAV writes a silent 16-bit mono WAV of the given length.
func writeWAV(t *testing.T, path string, seconds float64, rate int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, int(seconds*float64(rate))),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

type fakeRecognizer struct {
	mu     sync.Mutex
	calls  []string
	answer func(path, locale string) (string, error)
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) Recognize(ctx context.Context, path, locale string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, locale)
	f.mu.Unlock()
	return f.answer(path, locale)
}

type fakeSlicer struct {
	windows []transcript.ChunkSpec
	paths   []string
	fail    map[int]bool
}

func (f *fakeSlicer) Slice(ctx context.Context, src string, w transcript.ChunkSpec, dst string) error {
	index := len(f.windows)
	f.windows = append(f.windows, w)
	f.paths = append(f.paths, dst)
	if f.fail[index] {
		return os.ErrInvalid
	}
	return os.WriteFile(dst, []byte("slice"), 0644)
}

func (f *fakeSlicer) indexOf(path string) int {
	for i, p := range f.paths {
		if p == path {
			return i
		}
	}
	return -1
}

type fakeExecutor struct {
	calls [][]string
	run   func(name string, args []string) (string, error)
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.run == nil {
		return "", nil
	}
	return f.run(name, args)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeExecutor) LookPath(name string) bool { return true }

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func nopLogger() logger.Logger { return logger.NewNop() }

func joinCalls(calls []string) string { return strings.Join(calls, ",") }
