package media

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind is the broad class of a media file.
type Kind int

const (
	KindOther Kind = iota
	KindAudio
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	default:
		return "other"
	}
}

// Detect classifies a file from its content, not its extension.
func Detect(path string) (Kind, string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return KindOther, "", fmt.Errorf("detect mime type: %w", err)
	}
	return classify(mt), mt.String(), nil
}

// DetectBytes classifies an in-memory buffer.
func DetectBytes(data []byte) (Kind, string) {
	mt := mimetype.Detect(data)
	return classify(mt), mt.String()
}

func classify(mt *mimetype.MIME) Kind {
	for m := mt; m != nil; m = m.Parent() {
		switch {
		case strings.HasPrefix(m.String(), "audio/"):
			return KindAudio
		case strings.HasPrefix(m.String(), "video/"):
			return KindVideo
		}
	}
	return KindOther
}

// isOgg reports whether mt is an Ogg container of any kind.
func isOgg(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("application/ogg") || m.Is("audio/ogg") || m.Is("audio/opus") {
			return true
		}
	}
	return false
}
