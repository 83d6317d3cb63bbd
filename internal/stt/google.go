package stt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pion/opus/pkg/oggreader"
)

const googleSpeechURL = "https://speech.googleapis.com/v1p1beta1/speech:recognize"

type googleRecognizer struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewGoogle returns a recognizer backed by the Cloud Speech-to-Text REST
// API. An empty endpoint uses the public one.
func NewGoogle(apiKey, endpoint string) Recognizer {
	if endpoint == "" {
		endpoint = googleSpeechURL
	}
	return &googleRecognizer{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 2 * time.Minute},
	}
}

func (g *googleRecognizer) Name() string {
	return "google"
}

type googleRequest struct {
	Config googleConfig `json:"config"`
	Audio  googleAudio  `json:"audio"`
}

type googleConfig struct {
	Encoding        string `json:"encoding,omitempty"`
	SampleRateHertz int    `json:"sampleRateHertz,omitempty"`
	LanguageCode    string `json:"languageCode"`
}

type googleAudio struct {
	Content string `json:"content"`
}

type googleResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"results"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (g *googleRecognizer) Recognize(ctx context.Context, audioPath, locale string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	cfg := googleConfig{LanguageCode: locale}
	switch strings.ToLower(filepath.Ext(audioPath)) {
	case ".wav":
		cfg.Encoding = "LINEAR16"
	case ".flac":
		cfg.Encoding = "FLAC"
	case ".mp3":
		cfg.Encoding = "MP3"
		cfg.SampleRateHertz = 44100
	case ".ogg", ".opus", ".oga":
		cfg.Encoding = "OGG_OPUS"
		cfg.SampleRateHertz = oggSampleRate(audioPath)
	default:
		return "", fmt.Errorf("unsupported audio format %q", filepath.Ext(audioPath))
	}

	body, err := json.Marshal(googleRequest{
		Config: cfg,
		Audio:  googleAudio{Content: base64.StdEncoding.EncodeToString(data)},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := g.endpoint + "?key=" + url.QueryEscape(g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed googleResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("speech service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode != http.StatusOK || parsed.Error != nil {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("speech service returned %d: %s", resp.StatusCode, msg)
	}

	var parts []string
	for _, r := range parsed.Results {
		if len(r.Alternatives) > 0 && strings.TrimSpace(r.Alternatives[0].Transcript) != "" {
			parts = append(parts, strings.TrimSpace(r.Alternatives[0].Transcript))
		}
	}
	if len(parts) == 0 {
		return "", ErrUnrecognized
	}
	return strings.Join(parts, " "), nil
}

// oggSampleRate reads the input rate from the Opus header, defaulting to 48kHz.
func oggSampleRate(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 48000
	}
	defer f.Close()

	_, header, err := oggreader.NewWith(f)
	if err != nil || header.SampleRate == 0 {
		return 48000
	}
	return int(header.SampleRate)
}
