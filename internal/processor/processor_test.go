package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yasmineatrous/Speechscribe/internal/config"
	"github.com/yasmineatrous/Speechscribe/internal/logger"
	"github.com/yasmineatrous/Speechscribe/internal/media"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

var (
	wavHeader = []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00\x01\x00\x01\x00\x80\x3e\x00\x00\x00\x7d\x00\x00\x02\x00\x10\x00data\x00\x00\x00\x00")
	mp4Header = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2', 0, 0, 0, 0, 'i', 's', 'o', 'm'}
)

type fakeExtractor struct {
	dir   string
	cap   time.Duration
	err   error
	calls []media.ExtractOptions
	made  []string
}

func (f *fakeExtractor) ExtractAudio(ctx context.Context, src string, opts media.ExtractOptions) (string, error) {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return "", f.err
	}
	out := filepath.Join(f.dir, "extracted.wav")
	if err := os.WriteFile(out, wavHeader, 0644); err != nil {
		return "", err
	}
	f.made = append(f.made, out)
	return out, nil
}

func (f *fakeExtractor) CapFor(size int64) time.Duration { return f.cap }

type fakeBackend struct {
	out   transcript.Outcome
	paths []string
}

func (f *fakeBackend) Transcribe(ctx context.Context, path string) transcript.Outcome {
	f.paths = append(f.paths, path)
	return f.out
}

type fakeNotes struct {
	notes string
	err   error
	seen  string
}

func (f *fakeNotes) Generate(ctx context.Context, text string) (string, error) {
	f.seen = text
	return f.notes, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Defaults()
	cfg.Paths.Input = filepath.Join(root, "input")
	cfg.Paths.Output = filepath.Join(root, "output")
	cfg.Paths.Archived = filepath.Join(root, "archived")
	cfg.Paths.Temp = filepath.Join(root, "temp")
	for _, d := range []string{cfg.Paths.Input, cfg.Paths.Temp} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return &cfg
}

func writeInput(t *testing.T, cfg *config.Config, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.Input, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTranscribe(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		data         []byte
		cap          time.Duration
		extractErr   error
		wantOK       bool
		wantKind     transcript.ErrorKind
		wantExtracts int
		wantOriginal bool
	}{
		{name: "wav goes straight to the backend", file: "talk.wav", data: wavHeader, wantOK: true, wantOriginal: true},
		{name: "video is extracted", file: "talk.mp4", data: mp4Header, wantOK: true, wantExtracts: 1},
		{name: "large wav is capped", file: "big.wav", data: wavHeader, cap: 10 * time.Minute, wantOK: true, wantExtracts: 1},
		{
			name: "video extraction fails", file: "broken.mp4", data: mp4Header,
			extractErr: transcript.NewFailure(transcript.Unsupported, "cannot decode"),
			wantKind:   transcript.Unsupported, wantExtracts: 1,
		},
		{name: "text is rejected", file: "notes.txt", data: []byte("just some text"), wantKind: transcript.Unsupported},
		{name: "empty file", file: "empty.wav", data: nil, wantKind: transcript.Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			path := writeInput(t, cfg, tt.file, tt.data)
			ex := &fakeExtractor{dir: cfg.Paths.Temp, cap: tt.cap, err: tt.extractErr}
			backend := &fakeBackend{out: transcript.Success("hello world")}

			p := New(cfg, Deps{Extractor: ex, Backend: backend}, logger.NewNop())
			out := p.Transcribe(context.Background(), path)

			if out.OK() != tt.wantOK {
				t.Fatalf("Transcribe() ok = %v, failure = %v", out.OK(), out.Failure())
			}
			if !tt.wantOK && out.Failure().Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", out.Failure().Kind, tt.wantKind)
			}
			if len(ex.calls) != tt.wantExtracts {
				t.Errorf("extract calls = %d, want %d", len(ex.calls), tt.wantExtracts)
			}
			if tt.cap > 0 && len(ex.calls) > 0 && ex.calls[0].MaxDuration != tt.cap {
				t.Errorf("MaxDuration = %v, want %v", ex.calls[0].MaxDuration, tt.cap)
			}
			if tt.wantOriginal && (len(backend.paths) != 1 || backend.paths[0] != path) {
				t.Errorf("backend paths = %v, want the original file", backend.paths)
			}
			for _, made := range ex.made {
				if _, err := os.Stat(made); !os.IsNotExist(err) {
					t.Errorf("temporary audio %s was not removed", made)
				}
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("source file should stay in place: %v", err)
			}
		})
	}
}

func TestTranscribeAudioConversionFallback(t *testing.T) {
	cfg := testConfig(t)
	// ID3 tag followed by an MPEG frame header
	mp3 := append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), 0xFF, 0xFB, 0x90, 0x00)
	path := writeInput(t, cfg, "memo.mp3", mp3)
	ex := &fakeExtractor{dir: cfg.Paths.Temp, err: errors.New("ffmpeg missing")}
	backend := &fakeBackend{out: transcript.Success("memo text")}

	out := New(cfg, Deps{Extractor: ex, Backend: backend}, logger.NewNop()).Transcribe(context.Background(), path)
	if !out.OK() {
		t.Fatalf("Transcribe() failed: %v", out.Err())
	}
	if len(backend.paths) != 1 || backend.paths[0] != path {
		t.Errorf("backend paths = %v, want the original mp3", backend.paths)
	}
}

func TestProcess(t *testing.T) {
	cfg := testConfig(t)
	path := writeInput(t, cfg, "Lecture 1.mp4", mp4Header)
	ex := &fakeExtractor{dir: cfg.Paths.Temp}
	backend := &fakeBackend{out: transcript.Success("today we cover ownership")}
	gen := &fakeNotes{notes: "## Summary\n\n- **Ownership** rules"}

	p := New(cfg, Deps{Extractor: ex, Backend: backend, Notes: gen}, logger.NewNop())
	if err := p.Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if gen.seen != "today we cover ownership" {
		t.Errorf("notes input = %q", gen.seen)
	}
	for _, ext := range []string{".txt", ".md", ".pdf", ".docx"} {
		out := filepath.Join(cfg.Paths.Output, "Lecture 1"+ext)
		info, err := os.Stat(out)
		if err != nil || info.Size() == 0 {
			t.Errorf("output %s missing or empty (err = %v)", out, err)
		}
	}

	md, _ := os.ReadFile(filepath.Join(cfg.Paths.Output, "Lecture 1.md"))
	if !strings.HasPrefix(string(md), "# Lecture 1\n") || !strings.Contains(string(md), "**Ownership** rules") {
		t.Errorf("markdown = %q", md)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("original should have been moved out of the input folder")
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Archived, "Lecture 1.mp4")); err != nil {
		t.Errorf("original not archived: %v", err)
	}
	left, _ := filepath.Glob(filepath.Join(cfg.Paths.Temp, "*"))
	if len(left) != 0 {
		t.Errorf("temporary files left: %v", left)
	}
}

func TestProcessFailures(t *testing.T) {
	tests := []struct {
		name    string
		backend transcript.Outcome
		notes   *fakeNotes
		wantErr string
	}{
		{
			name:    "transcription fails",
			backend: transcript.Failed(transcript.ServiceUnavailable, "speech service down"),
			notes:   &fakeNotes{notes: "unused"},
			wantErr: "transcribe",
		},
		{
			name:    "notes fail",
			backend: transcript.Success("some words"),
			notes:   &fakeNotes{err: errors.New("rate limited")},
			wantErr: "generate notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			path := writeInput(t, cfg, "clip.wav", wavHeader)
			p := New(cfg, Deps{
				Extractor: &fakeExtractor{dir: cfg.Paths.Temp},
				Backend:   &fakeBackend{out: tt.backend},
				Notes:     tt.notes,
			}, logger.NewNop())

			err := p.Process(context.Background(), path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Process() error = %v, want %q", err, tt.wantErr)
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("failed input should stay in the inbox: %v", err)
			}
		})
	}
}
