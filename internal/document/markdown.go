package document

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Kind is the type of a rendered block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindBullet
	KindNumbered
	KindQuote
	KindCode
)

// Run is a span of text with one style.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

// Block is one line-level element of a notes document. Level is the heading
// level, Number the ordinal of a numbered item and Depth the list nesting.
type Block struct {
	Kind   Kind
	Level  int
	Number int
	Depth  int
	Runs   []Run
}

// Text returns the block's text without styling.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Parse flattens markdown into blocks. Thematic breaks and raw HTML are
// dropped; links keep only their label.
func Parse(markdown string) []Block {
	src := []byte(markdown)
	p := &parser{src: src}
	p.blocks(goldmark.New().Parser().Parse(text.NewReader(src)))
	return p.out
}

type parser struct {
	src []byte
	out []Block
}

func (p *parser) blocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			p.add(Block{Kind: KindHeading, Level: node.Level, Runs: p.inline(node)})
		case *ast.Paragraph, *ast.TextBlock:
			p.add(Block{Kind: KindParagraph, Runs: p.inline(node)})
		case *ast.List:
			p.list(node, 0)
		case *ast.Blockquote:
			p.quote(node)
		case *ast.FencedCodeBlock:
			p.add(Block{Kind: KindCode, Runs: []Run{{Text: p.lines(node)}}})
		case *ast.CodeBlock:
			p.add(Block{Kind: KindCode, Runs: []Run{{Text: p.lines(node)}}})
		}
	}
}

func (p *parser) list(l *ast.List, depth int) {
	number := l.Start
	if number == 0 {
		number = 1
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *ast.List:
				p.list(node, depth+1)
			case *ast.Paragraph, *ast.TextBlock:
				b := Block{Kind: KindParagraph, Depth: depth, Runs: p.inline(node)}
				if first {
					b.Kind = KindBullet
					if l.IsOrdered() {
						b.Kind, b.Number = KindNumbered, number
					}
					first = false
				}
				p.add(b)
			}
		}
		number++
	}
}

func (p *parser) quote(q *ast.Blockquote) {
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			p.add(Block{Kind: KindQuote, Runs: p.inline(node)})
		case *ast.Blockquote:
			p.quote(node)
		case *ast.List:
			p.list(node, 0)
		}
	}
}

func (p *parser) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(p.src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (p *parser) add(b Block) {
	if strings.TrimSpace(b.Text()) == "" {
		return
	}
	p.out = append(p.out, b)
}

func (p *parser) inline(n ast.Node) []Run {
	var runs []Run
	p.walk(n, false, false, &runs)

	// trim the outer edges and merge neighbours with the same style
	var merged []Run
	for _, r := range runs {
		if k := len(merged) - 1; k >= 0 && merged[k].Bold == r.Bold && merged[k].Italic == r.Italic {
			merged[k].Text += r.Text
			continue
		}
		merged = append(merged, r)
	}
	if len(merged) > 0 {
		merged[0].Text = strings.TrimLeft(merged[0].Text, " ")
		last := len(merged) - 1
		merged[last].Text = strings.TrimRight(merged[last].Text, " ")
	}
	return merged
}

func (p *parser) walk(n ast.Node, bold, italic bool, runs *[]Run) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			s := string(node.Value(p.src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				s += " "
			}
			*runs = append(*runs, Run{Text: s, Bold: bold, Italic: italic})
		case *ast.String:
			*runs = append(*runs, Run{Text: string(node.Value), Bold: bold, Italic: italic})
		case *ast.AutoLink:
			*runs = append(*runs, Run{Text: string(node.Label(p.src)), Bold: bold, Italic: italic})
		case *ast.Emphasis:
			p.walk(node, bold || node.Level >= 2, italic || node.Level == 1, runs)
		case *ast.RawHTML:
		default:
			p.walk(c, bold, italic, runs)
		}
	}
}
