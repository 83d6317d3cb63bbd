package processor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yasmineatrous/Speechscribe/internal/document"
)

// outputs are the files written for one processed input
type outputs struct {
	Transcript string
	Markdown   string
	PDF        string
	DOCX       string
}

func (p *implProcessor) writeOutputs(ctx context.Context, name, text, notes string) (outputs, error) {
	dir := p.cfg.Paths.Output
	if err := os.MkdirAll(dir, 0755); err != nil {
		return outputs{}, fmt.Errorf("create output dir: %w", err)
	}

	out := outputs{
		Transcript: filepath.Join(dir, name+".txt"),
		Markdown:   filepath.Join(dir, name+".md"),
		PDF:        filepath.Join(dir, name+".pdf"),
		DOCX:       filepath.Join(dir, name+".docx"),
	}

	if err := os.WriteFile(out.Transcript, []byte(strings.TrimSpace(text)+"\n"), 0644); err != nil {
		return out, fmt.Errorf("write transcript: %w", err)
	}

	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		name,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(notes),
	)
	if err := os.WriteFile(out.Markdown, []byte(md), 0644); err != nil {
		return out, fmt.Errorf("write markdown: %w", err)
	}

	var buf bytes.Buffer
	if err := document.RenderPDF(name, notes, &buf); err != nil {
		return out, err
	}
	if err := os.WriteFile(out.PDF, buf.Bytes(), 0644); err != nil {
		return out, fmt.Errorf("write pdf: %w", err)
	}

	if err := document.RenderDOCX(name, notes, out.DOCX); err != nil {
		return out, err
	}

	p.logger.Debug(ctx, "Wrote %s, %s, %s and %s", out.Transcript, out.Markdown, out.PDF, out.DOCX)
	return out, nil
}
