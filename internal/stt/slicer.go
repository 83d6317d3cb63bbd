package stt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
	"github.com/yasmineatrous/Speechscribe/pkg/executor"
)

type ffmpegSlicer struct {
	executor executor.Executor
	binary   string
}

// NewFFmpegSlicer cuts windows with ffmpeg into 16kHz mono PCM WAV.
func NewFFmpegSlicer(exec executor.Executor, binary string) Slicer {
	if binary == "" {
		binary = "ffmpeg"
	}
	return ffmpegSlicer{executor: exec, binary: binary}
}

func (s ffmpegSlicer) Slice(ctx context.Context, src string, w transcript.ChunkSpec, dst string) error {
	args := []string{
		"-ss", formatSeconds(w.Start),
		"-t", formatSeconds(w.Duration()),
		"-i", src,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		dst,
	}
	if _, err := s.executor.Execute(ctx, s.binary, args...); err != nil {
		return fmt.Errorf("ffmpeg slice: %w", err)
	}
	return nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}

// WAVSlicer cuts windows out of a WAV file in process. Decoded PCM is kept
// per source until Release so sequential windows decode the file once. A
// source whose size or modification time changed is decoded again.
type WAVSlicer struct {
	mu      sync.Mutex
	sources map[string]*wavSource
}

type wavSource struct {
	size    int64
	modTime time.Time
	buf     *audio.IntBuffer
	rate    int
	chans   int
	bitDep  int
}

func (s *WAVSlicer) Slice(ctx context.Context, src string, w transcript.ChunkSpec, dst string) error {
	pcm, err := s.load(src)
	if err != nil {
		return err
	}

	from := int(w.Start*float64(pcm.rate)) * pcm.chans
	to := int(w.End*float64(pcm.rate)) * pcm.chans
	if to > len(pcm.buf.Data) {
		to = len(pcm.buf.Data)
	}
	if from >= to {
		return fmt.Errorf("window [%.1fs-%.1fs] is outside the recording", w.Start, w.End)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create slice: %w", err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, pcm.rate, pcm.bitDep, pcm.chans, 1)
	slice := &audio.IntBuffer{
		Format:         pcm.buf.Format,
		Data:           pcm.buf.Data[from:to],
		SourceBitDepth: pcm.bitDep,
	}
	if err := enc.Write(slice); err != nil {
		return fmt.Errorf("write slice: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize slice: %w", err)
	}
	return nil
}

// Release drops the decoded PCM kept for src.
func (s *WAVSlicer) Release(src string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sources, src)
}

func (s *WAVSlicer) load(src string) (*wavSource, error) {
	st, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("stat wav: %w", err)
	}

	s.mu.Lock()
	cached, ok := s.sources[src]
	s.mu.Unlock()
	if ok && cached.size == st.Size() && cached.modTime.Equal(st.ModTime()) {
		return cached, nil
	}

	pcm, err := decodeWAV(src)
	if err != nil {
		return nil, err
	}
	pcm.size = st.Size()
	pcm.modTime = st.ModTime()

	s.mu.Lock()
	if s.sources == nil {
		s.sources = make(map[string]*wavSource)
	}
	s.sources[src] = pcm
	s.mu.Unlock()
	return pcm, nil
}

func decodeWAV(src string) (*wavSource, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a wav file: %s", src)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	return &wavSource{
		buf:    buf,
		rate:   int(dec.SampleRate),
		chans:  int(dec.NumChans),
		bitDep: int(dec.BitDepth),
	}, nil
}

// Releaser is implemented by slicers that keep per-source state between
// windows.
type Releaser interface {
	Release(src string)
}

type autoSlicer struct {
	wav    *WAVSlicer
	ffmpeg Slicer
}

// NewSlicer cuts WAV sources in process and everything else, or any WAV the
// in-process path rejects, with ffmpeg.
func NewSlicer(exec executor.Executor, ffmpegBinary string) Slicer {
	return &autoSlicer{
		wav:    &WAVSlicer{},
		ffmpeg: NewFFmpegSlicer(exec, ffmpegBinary),
	}
}

func (s *autoSlicer) Slice(ctx context.Context, src string, w transcript.ChunkSpec, dst string) error {
	if strings.EqualFold(filepath.Ext(src), ".wav") {
		if err := s.wav.Slice(ctx, src, w, dst); err == nil {
			return nil
		}
	}
	return s.ffmpeg.Slice(ctx, src, w, dst)
}

func (s *autoSlicer) Release(src string) {
	s.wav.Release(src)
}
