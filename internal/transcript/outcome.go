package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why a transcript could not be produced.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	NotFound
	Empty
	Unsupported
	ServiceUnavailable
	TooLarge
	Timeout
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Empty:
		return "empty"
	case Unsupported:
		return "unsupported"
	case ServiceUnavailable:
		return "service_unavailable"
	case TooLarge:
		return "too_large"
	case Timeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Failure is the typed error every component returns at its boundary.
type Failure struct {
	Kind    ErrorKind
	Message string
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return f.Kind.String()
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// NewFailure builds a Failure with a formatted message.
func NewFailure(kind ErrorKind, format string, args ...interface{}) *Failure {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Failure{Kind: kind, Message: msg}
}

// Outcome is either a non-blank transcript or a Failure, never both.
type Outcome struct {
	text    string
	failure *Failure
}

// Success returns a successful outcome. Blank text becomes Failed(Empty).
func Success(text string) Outcome {
	if strings.TrimSpace(text) == "" {
		return Failed(Empty, "transcript is empty")
	}
	return Outcome{text: text}
}

// Failed returns a failed outcome of the given kind.
func Failed(kind ErrorKind, message string) Outcome {
	return Outcome{failure: &Failure{Kind: kind, Message: message}}
}

// FromFailure wraps an existing Failure. A nil failure is Failed(Unknown).
func FromFailure(f *Failure) Outcome {
	if f == nil {
		return Failed(Unknown, "unknown failure")
	}
	return Outcome{failure: f}
}

// FromError converts an arbitrary error into a failed outcome. A Failure in
// the chain is kept as is; anything else is classified by its message.
func FromError(err error) Outcome {
	return FromFailure(AsFailure(err))
}

// AsFailure returns the Failure carried by err, classifying err when it
// carries none. It returns nil for a nil error.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Failure{Kind: Timeout, Message: err.Error()}
	}
	return &Failure{Kind: Classify(err.Error()), Message: err.Error()}
}

// OK reports a non-blank transcript. The zero Outcome is not OK.
func (o Outcome) OK() bool {
	return o.failure == nil && strings.TrimSpace(o.text) != ""
}

func (o Outcome) Text() string {
	return o.text
}

// Failure returns nil for a successful outcome. An outcome that carries
// neither text nor a failure reports Empty.
func (o Outcome) Failure() *Failure {
	if o.failure == nil && !o.OK() {
		return &Failure{Kind: Empty, Message: "transcript is empty"}
	}
	return o.failure
}

// Err returns the failure as an error, or nil on success.
func (o Outcome) Err() error {
	if o.OK() {
		return nil
	}
	return o.Failure()
}

// ChunkSpec is one time window of a longer recording, in seconds.
type ChunkSpec struct {
	Start float64
	End   float64
}

func (c ChunkSpec) Duration() float64 {
	return c.End - c.Start
}

// Segment is one caption line as returned by a captions source.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}
