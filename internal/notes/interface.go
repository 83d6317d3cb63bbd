package notes

import "context"

// Generator turns a transcript into markdown notes.
type Generator interface {
	Generate(ctx context.Context, transcript string) (string, error)
}
