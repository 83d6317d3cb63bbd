package document

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

const sampleNotes = `# Lecture Notes

## Key Points

- **Ownership** moves values
- Borrowing is *temporary*
  - nested detail

1. First step
2. Second step

> Quoted remark

Plain paragraph with a [link](https://example.com).

---

` + "```\ncode line\n```\n"

func TestParse(t *testing.T) {
	blocks := Parse(sampleNotes)

	want := []struct {
		kind  Kind
		text  string
		level int
		num   int
		depth int
	}{
		{KindHeading, "Lecture Notes", 1, 0, 0},
		{KindHeading, "Key Points", 2, 0, 0},
		{KindBullet, "Ownership moves values", 0, 0, 0},
		{KindBullet, "Borrowing is temporary", 0, 0, 0},
		{KindBullet, "nested detail", 0, 0, 1},
		{KindNumbered, "First step", 0, 1, 0},
		{KindNumbered, "Second step", 0, 2, 0},
		{KindQuote, "Quoted remark", 0, 0, 0},
		{KindParagraph, "Plain paragraph with a link.", 0, 0, 0},
		{KindCode, "code line", 0, 0, 0},
	}
	if len(blocks) != len(want) {
		t.Fatalf("Parse() returned %d blocks, want %d: %+v", len(blocks), len(want), blocks)
	}
	for i, w := range want {
		b := blocks[i]
		if b.Kind != w.kind || b.Text() != w.text || b.Level != w.level || b.Number != w.num || b.Depth != w.depth {
			t.Errorf("block %d = {%d %q L%d N%d D%d}, want {%d %q L%d N%d D%d}",
				i, b.Kind, b.Text(), b.Level, b.Number, b.Depth, w.kind, w.text, w.level, w.num, w.depth)
		}
	}
}

func TestParseInlineStyles(t *testing.T) {
	blocks := Parse("Some **bold** and *italic* and ***both*** words")
	if len(blocks) != 1 {
		t.Fatalf("Parse() returned %d blocks", len(blocks))
	}

	runs := blocks[0].Runs
	find := func(text string) Run {
		for _, r := range runs {
			if r.Text == text {
				return r
			}
		}
		t.Fatalf("no run %q in %+v", text, runs)
		return Run{}
	}

	if r := find("bold"); !r.Bold || r.Italic {
		t.Errorf("bold run = %+v", r)
	}
	if r := find("italic"); r.Bold || !r.Italic {
		t.Errorf("italic run = %+v", r)
	}
	if r := find("both"); !r.Bold || !r.Italic {
		t.Errorf("both run = %+v", r)
	}
	if runs[0].Text != "Some " || runs[0].Bold {
		t.Errorf("first run = %+v", runs[0])
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   \n\n", "---\n"} {
		if blocks := Parse(in); len(blocks) != 0 {
			t.Errorf("Parse(%q) = %+v, want none", in, blocks)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPDF("Structured Notes", sampleNotes+"\nCafé – naïve “quotes”\n", &buf); err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", out[:min(len(out), 16)])
	}
	if !bytes.Contains(out[len(out)-16:], []byte("%%EOF")) {
		t.Error("output is missing the PDF trailer")
	}
}

func TestRenderDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.docx")
	if err := RenderDOCX("Structured Notes", sampleNotes, path); err != nil {
		t.Fatalf("RenderDOCX() error = %v", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("output is not a docx archive: %v", err)
	}
	defer zr.Close()

	var body string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		body = string(data)
	}

	for _, want := range []string{"Structured Notes", "Key Points", "Ownership", "Second step"} {
		if !strings.Contains(body, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
}
