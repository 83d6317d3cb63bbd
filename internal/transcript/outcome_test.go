package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSuccess(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantOK bool
	}{
		{name: "text", text: "hello world", wantOK: true},
		{name: "empty", text: "", wantOK: false},
		{name: "whitespace", text: " \n\t ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Success(tt.text)
			if o.OK() != tt.wantOK {
				t.Fatalf("Success(%q).OK() = %v, want %v", tt.text, o.OK(), tt.wantOK)
			}
			if !tt.wantOK && o.Failure().Kind != Empty {
				t.Errorf("Kind = %v, want %v", o.Failure().Kind, Empty)
			}
			if tt.wantOK && o.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", o.Text(), tt.text)
			}
		})
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{name: "wrapped failure", err: fmt.Errorf("acquire: %w", &Failure{Kind: TooLarge}), want: TooLarge},
		{name: "deadline", err: fmt.Errorf("run: %w", context.DeadlineExceeded), want: Timeout},
		{name: "classified", err: errors.New("503 Service Unavailable"), want: ServiceUnavailable},
		{name: "unclassified", err: errors.New("boom"), want: Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := FromError(tt.err)
			if o.OK() {
				t.Fatal("FromError() should not be OK")
			}
			if o.Failure().Kind != tt.want {
				t.Errorf("Kind = %v, want %v", o.Failure().Kind, tt.want)
			}
		})
	}
}

func TestAsFailureNil(t *testing.T) {
	if AsFailure(nil) != nil {
		t.Error("AsFailure(nil) should be nil")
	}
	if FromFailure(nil).Failure().Kind != Unknown {
		t.Error("FromFailure(nil) should be Unknown")
	}
}

func TestZeroOutcome(t *testing.T) {
	var o Outcome
	if o.OK() {
		t.Error("zero Outcome should not be OK")
	}
	if f := o.Failure(); f == nil || f.Kind != Empty {
		t.Errorf("Failure() = %v, want Empty", f)
	}
	if o.Err() == nil {
		t.Error("Err() should be non-nil for the zero Outcome")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		message string
		want    ErrorKind
	}{
		{"Authentication failed: invalid API key", Unknown},
		{"request entity too large", TooLarge},
		{"HTTP 413", TooLarge},
		{"read tcp: i/o timeout", Timeout},
		{"context deadline exceeded", Timeout},
		{"invalid file format", Unsupported},
		{"Service Unavailable", ServiceUnavailable},
		{"dial tcp: connection refused", ServiceUnavailable},
		{"something odd", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := Classify(tt.message); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	kinds := []ErrorKind{Unknown, NotFound, Empty, Unsupported, ServiceUnavailable, TooLarge, Timeout}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			msg := UserMessage(&Failure{Kind: kind, Message: "raw detail"})
			if !strings.Contains(msg, "raw detail") {
				t.Errorf("message %q should keep the detail", msg)
			}
			if msg == "raw detail" {
				t.Errorf("message should not be the raw detail alone")
			}
		})
	}

	if UserMessage(nil) != "" {
		t.Error("UserMessage(nil) should be empty")
	}
}

func TestChunkSpecDuration(t *testing.T) {
	c := ChunkSpec{Start: 28, End: 58}
	if c.Duration() != 30 {
		t.Errorf("Duration() = %v, want 30", c.Duration())
	}
}
