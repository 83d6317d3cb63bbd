package captions

import "regexp"

// Patterns are tried in order; the first match wins.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([\w-]+)`),
	regexp.MustCompile(`youtube\.com/embed/([\w-]+)`),
	regexp.MustCompile(`youtube\.com/v/([\w-]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([\w-]+)`),
	regexp.MustCompile(`[?&](?:v|video_id)=([\w-]+)`),
}

// ExtractVideoID returns the video identifier embedded in url.
func ExtractVideoID(url string) (string, bool) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical watch page for a video identifier.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
