package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfTitleSize  = 16
	pdfBodySize   = 10
	pdfLineHeight = 5.5
	pdfMargin     = 20
	pdfIndent     = 6
)

// RenderPDF writes the notes as an A4 PDF. Characters outside cp1252 are
// replaced by the core fonts.
func RenderPDF(title, markdown string, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(title, true)
	pdf.SetCreator("Speechscribe", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", pdfTitleSize)
	pdf.MultiCell(0, 8, tr(title), "", "C", false)
	pdf.Ln(4)

	for _, b := range Parse(markdown) {
		switch b.Kind {
		case KindHeading:
			pdf.Ln(2)
			pdf.SetFont(pdfFont, "B", headingPoints(b.Level))
			pdf.MultiCell(0, 7, tr(b.Text()), "", "L", false)
			pdf.Ln(1)
		case KindBullet, KindNumbered:
			indent := pdfMargin + pdfIndent*float64(b.Depth+1)
			pdf.SetFont(pdfFont, "", pdfBodySize)
			pdf.SetX(indent - pdfIndent)
			pdf.Write(pdfLineHeight, tr(marker(b)))
			writeRuns(pdf, tr, b.Runs, "", indent)
		case KindQuote:
			writeRuns(pdf, tr, b.Runs, "I", pdfMargin+pdfIndent)
		case KindCode:
			pdf.SetFont("Courier", "", pdfBodySize-1)
			pdf.MultiCell(0, pdfLineHeight-1, tr(b.Text()), "", "L", false)
			pdf.Ln(1)
		default:
			writeRuns(pdf, tr, b.Runs, "", pdfMargin+pdfIndent*float64(b.Depth))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// writeRuns flows styled runs as one paragraph with the left margin moved to
// indent so wrapped lines line up.
func writeRuns(pdf *fpdf.Fpdf, tr func(string) string, runs []Run, extra string, indent float64) {
	pdf.SetLeftMargin(indent)
	if pdf.GetX() < indent {
		pdf.SetX(indent)
	}
	for _, r := range runs {
		pdf.SetFont(pdfFont, style(r, extra), pdfBodySize)
		pdf.Write(pdfLineHeight, tr(r.Text))
	}
	pdf.Ln(pdfLineHeight + 1)
	pdf.SetLeftMargin(pdfMargin)
}

func style(r Run, extra string) string {
	s := extra
	if r.Bold {
		s += "B"
	}
	if r.Italic && !strings.Contains(s, "I") {
		s += "I"
	}
	return s
}

func marker(b Block) string {
	if b.Kind == KindNumbered {
		return fmt.Sprintf("%d. ", b.Number)
	}
	return "• "
}

func headingPoints(level int) float64 {
	switch level {
	case 1:
		return 14
	case 2:
		return 12
	default:
		return 11
	}
}
