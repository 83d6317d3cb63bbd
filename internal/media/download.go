package media

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Download is an audio file fetched by an Acquirer. The caller owns it and
// must call Release once it is no longer needed.
type Download struct {
	Path      string
	SizeBytes int64
	Title     string

	once sync.Once
	err  error
}

// Release deletes the file. It is safe to call more than once.
func (d *Download) Release() error {
	if d == nil {
		return nil
	}
	d.once.Do(func() {
		if err := os.Remove(d.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			d.err = fmt.Errorf("remove download: %w", err)
		}
	})
	return d.err
}
