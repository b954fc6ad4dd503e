package lexical

import (
	"strings"
	"unicode/utf8"
)

// PlainTextTarget renders readable text with one line per block.
type PlainTextTarget struct {
	sb strings.Builder
}

func NewPlainTextTarget() *PlainTextTarget {
	return &PlainTextTarget{}
}

func (p *PlainTextTarget) String() string {
	return strings.TrimSpace(p.sb.String())
}

func (p *PlainTextTarget) newline() {
	s := p.sb.String()
	if s != "" && s[len(s)-1] != '\n' {
		p.sb.WriteString("\n")
	}
}

func (p *PlainTextTarget) NoContent() {}

func (p *PlainTextTarget) Open(b Block) {
	switch b.Kind {
	case BlockListItem:
		p.newline()
		if !b.Nested {
			p.sb.WriteString(strings.Repeat("  ", b.ListDepth))
		}
	case BlockTableCell:
		s := p.sb.String()
		if s != "" && s[len(s)-1] != '\n' {
			p.sb.WriteString("\t")
		}
	case BlockParagraph, BlockHeading, BlockQuote, BlockCode, BlockList, BlockTable, BlockTableRow:
		p.newline()
	}
}

func (p *PlainTextTarget) Close(b Block) {
	switch b.Kind {
	case BlockParagraph, BlockHeading, BlockQuote, BlockCode, BlockListItem, BlockTableRow:
		p.newline()
	case BlockGeneric:
		if !b.Inline {
			p.newline()
		}
	}
}

func (p *PlainTextTarget) OpenMark(Format)  {}
func (p *PlainTextTarget) CloseMark(Format) {}

func (p *PlainTextTarget) Text(text string, _ StyleMap) {
	p.sb.WriteString(text)
}

func (p *PlainTextTarget) LineBreak() {
	p.sb.WriteString("\n")
}

func (p *PlainTextTarget) Image(a Asset) {
	if a.Alt != "" {
		p.newline()
		p.sb.WriteString(a.Alt)
		p.sb.WriteString("\n")
	}
}

func (p *PlainTextTarget) Rule() {
	p.newline()
}

// Excerpt returns the document text with whitespace collapsed, cut at a word
// boundary so it holds at most maxRunes runes plus an ellipsis.
func Excerpt(doc *Document, maxRunes int) string {
	t := NewPlainTextTarget()
	NewRenderer().Render(doc, t)
	text := strings.Join(strings.Fields(t.String()), " ")

	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:maxRunes])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
