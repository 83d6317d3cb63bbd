package transcript

import "strings"

var classifyRules = []struct {
	needles []string
	kind    ErrorKind
}{
	{[]string{"authentication", "unauthorized", "api key"}, Unknown},
	{[]string{"too large", "413"}, TooLarge},
	{[]string{"timeout", "timed out", "deadline"}, Timeout},
	{[]string{"format"}, Unsupported},
	{[]string{"unavailable", "503", "connection refused"}, ServiceUnavailable},
}

// Classify maps a free-text vendor error to an ErrorKind. Best effort only:
// the result selects the user message and never drives retries.
func Classify(message string) ErrorKind {
	lower := strings.ToLower(message)
	for _, rule := range classifyRules {
		for _, needle := range rule.needles {
			if strings.Contains(lower, needle) {
				return rule.kind
			}
		}
	}
	return Unknown
}

// UserMessage renders an actionable message naming the likely cause and an
// alternative way to provide the content.
func UserMessage(f *Failure) string {
	if f == nil {
		return ""
	}

	var cause, hint string
	switch f.Kind {
	case NotFound:
		cause = "No transcript source could be found for this input."
		hint = "Check the link, or upload the audio file directly."
	case Empty:
		cause = "No speech could be recognized in the audio."
		hint = "Try a clearer recording, or record directly in the browser."
	case Unsupported:
		cause = "The file format is not supported."
		hint = "Convert it to WAV, MP3 or MP4 and upload it again."
	case ServiceUnavailable:
		cause = "A transcription service is currently unavailable."
		hint = "Try again in a few minutes, or paste a different video URL."
	case TooLarge:
		cause = "The input is too large to process."
		hint = "Upload a shorter clip (under 10 minutes works best)."
	case Timeout:
		cause = "Processing took too long and was stopped."
		hint = "Upload a shorter file, or record a shorter segment."
	default:
		cause = "The transcript could not be produced."
		hint = "Try recording audio directly or uploading the file instead."
	}

	if f.Message == "" {
		return cause + " " + hint
	}
	return cause + " (" + f.Message + ") " + hint
}
