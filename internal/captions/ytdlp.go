package captions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// json3 is YouTube's timed-text format as written by yt-dlp.
type json3 struct {
	Events []struct {
		StartMs    float64 `json:"tStartMs"`
		DurationMs float64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// Segments writes the subtitles into a scratch directory and parses them.
// yt-dlp picks creator-authored subtitles over automatic ones when both exist.
func (s *ytdlpSource) Segments(ctx context.Context, videoID string) ([]transcript.Segment, error) {
	dir := filepath.Join(s.tempDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create caption dir: %w", err)
	}
	defer os.RemoveAll(dir)

	langs := make([]string, 0, len(s.languages)*2)
	for _, l := range s.languages {
		langs = append(langs, l, l+"-.*")
	}

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", strings.Join(langs, ","),
		"--sub-format", "json3",
		"--no-playlist",
		"-o", filepath.Join(dir, "captions.%(ext)s"),
		WatchURL(videoID),
	}
	if _, err := s.executor.Execute(ctx, s.binary, args...); err != nil {
		return nil, fmt.Errorf("yt-dlp subtitles: %w", err)
	}

	path, err := s.pick(dir)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitles: %w", err)
	}
	return parseJSON3(data)
}

// pick returns the subtitle file for the most preferred language.
func (s *ytdlpSource) pick(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json3"))
	if err != nil {
		return "", fmt.Errorf("find subtitles: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no subtitles found for this video")
	}
	sort.Strings(matches)

	for _, lang := range s.languages {
		for _, m := range matches {
			if strings.HasSuffix(m, "."+lang+".json3") {
				return m, nil
			}
		}
		for _, m := range matches {
			if strings.Contains(filepath.Base(m), "."+lang+"-") {
				return m, nil
			}
		}
	}
	return matches[0], nil
}

func parseJSON3(data []byte) ([]transcript.Segment, error) {
	var doc json3
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("subtitle format not supported: %w", err)
	}

	var segments []transcript.Segment
	for _, ev := range doc.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.Join(strings.Fields(b.String()), " ")
		if text == "" {
			continue
		}
		segments = append(segments, transcript.Segment{
			Text:     text,
			Start:    ev.StartMs / 1000,
			Duration: ev.DurationMs / 1000,
		})
	}
	return segments, nil
}
