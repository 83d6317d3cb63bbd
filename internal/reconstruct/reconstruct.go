package reconstruct

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/go-shiori/go-readability"
	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// Notice prefixes every reconstructed transcript.
const Notice = "[Approximate transcript reconstructed from the video page, not from its audio. Verify before relying on it.]"

const reconstructPrompt = `No audio or captions could be obtained for the video at %s.
Using only the page information below, write a best-effort approximation of what the video most likely says, as plain flowing prose in the speaker's voice.
Do not invent specific numbers, names or quotes that the page does not support.
If the information is not enough to say anything meaningful about the content, reply only with: I cannot access this video.

Page information:
%s`

type pageInfo struct {
	Title  string
	Byline string
	Site   string
	Body   string
}

func (p pageInfo) String() string {
	var b strings.Builder
	if p.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", p.Title)
	}
	if p.Byline != "" {
		fmt.Fprintf(&b, "Author: %s\n", p.Byline)
	}
	if p.Site != "" {
		fmt.Fprintf(&b, "Site: %s\n", p.Site)
	}
	if p.Body != "" {
		b.WriteString("\n---\n\n")
		b.WriteString(p.Body)
	}
	if b.Len() == 0 {
		return "(the page could not be fetched)"
	}
	return b.String()
}

// Reconstruct asks the completion model for an approximation. A reply in
// which the model says it cannot access the video is NotFound.
func (r *implReconstructor) Reconstruct(ctx context.Context, videoURL string) transcript.Outcome {
	info, err := r.fetchPage(ctx, videoURL)
	if err != nil {
		r.logger.Warn(ctx, "Could not fetch page for %s, prompting with the URL only: %v", videoURL, err)
	}

	text, err := r.completer.Complete(ctx, fmt.Sprintf(reconstructPrompt, videoURL, info))
	if err != nil {
		return transcript.FromError(fmt.Errorf("reconstruct transcript: %w", err))
	}
	if refused(text) {
		return transcript.Failed(transcript.NotFound, "the model could not access the video")
	}

	r.logger.Info(ctx, "Reconstructed an approximate transcript for %s (%d chars)", videoURL, len(text))
	out := transcript.Success(strings.TrimSpace(text))
	if !out.OK() {
		return out
	}
	return transcript.Success(Notice + "\n\n" + out.Text())
}

// refused reports whether the completion is the model saying it cannot
// access the video.
func refused(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "cannot access") && strings.Contains(lower, "video")
}

func (r *implReconstructor) fetchPage(ctx context.Context, videoURL string) (pageInfo, error) {
	parsed, err := url.Parse(videoURL)
	if err != nil || parsed.Host == "" {
		return pageInfo{}, fmt.Errorf("invalid url %q", videoURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return pageInfo{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := r.client.Do(req)
	if err != nil {
		return pageInfo{}, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pageInfo{}, fmt.Errorf("fetch page: HTTP %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return pageInfo{}, fmt.Errorf("read page: %w", err)
	}

	var info pageInfo
	article, err := readability.FromReader(bytes.NewReader(raw), parsed)
	if err == nil {
		info = pageInfo{
			Title:  article.Title,
			Byline: article.Byline,
			Site:   article.SiteName,
			Body:   strings.TrimSpace(article.TextContent),
		}
	}
	if info.Body == "" {
		// readability found no article; keep whatever text the page has
		body, err := htmltomarkdown.ConvertString(string(raw))
		if err != nil {
			return info, fmt.Errorf("convert page: %w", err)
		}
		info.Body = strings.TrimSpace(body)
	}
	info.Body = truncate(info.Body, maxPageChars)
	return info, nil
}

// truncate cuts s to at most limit bytes on a rune boundary.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "\n\n[Content truncated...]"
}
