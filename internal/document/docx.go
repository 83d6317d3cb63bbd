package document

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFont     = "Times New Roman"
	docxFontSize = 13
)

// RenderDOCX writes the notes as a Word document at outputPath.
func RenderDOCX(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, b := range Parse(markdown) {
		p := doc.AddParagraph("")
		switch b.Kind {
		case KindHeading:
			addStyledRun(p, b.Text(), true, headingSize(b.Level))
		case KindBullet, KindNumbered:
			addStyledRun(p, strings.Repeat("    ", b.Depth)+marker(b), false, docxFontSize)
			addRuns(p, b.Runs, false)
		case KindQuote:
			addRuns(p, b.Runs, true)
		case KindCode:
			p.AddText(b.Text()).Font("Courier New").Size(docxFontSize - 2).Color("000000")
		default:
			addRuns(p, b.Runs, false)
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return docxFontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(docxFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRuns(p *docx.Paragraph, runs []Run, italic bool) {
	for _, r := range runs {
		run := p.AddText(r.Text).Font(docxFont).Size(docxFontSize).Color("000000")
		if r.Bold {
			run.Bold(true)
		}
		if r.Italic || italic {
			run.Italic(true)
		}
	}
}
