package processor

import (
	"context"

	"github.com/yasmineatrous/Speechscribe/internal/transcript"
)

// Processor turns local media files into transcripts and notes
type Processor interface {
	// Transcribe converts one audio or video file into a transcript. The
	// source file is left in place; intermediate audio is removed.
	Transcribe(ctx context.Context, path string) transcript.Outcome
	// Process runs the inbox pipeline for one file: transcript, notes,
	// output documents, then archiving of the original.
	Process(ctx context.Context, path string) error
}
