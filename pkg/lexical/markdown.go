package lexical

import (
	"fmt"
	"strings"
)

var markdownMarks = map[Format][2]string{
	FormatCode:          {"`", "`"},
	FormatBold:          {"**", "**"},
	FormatItalic:        {"_", "_"},
	FormatStrikethrough: {"~~", "~~"},
	FormatUnderline:     {"<u>", "</u>"}, // no native markdown underline
	FormatSubscript:     {"<sub>", "</sub>"},
	FormatSuperscript:   {"<sup>", "</sup>"},
	FormatHighlight:     {"==", "=="},
}

// MarkdownTarget renders GitHub flavoured markdown.
type MarkdownTarget struct {
	doc strings.Builder

	inCode int
	quote  int
	items  int // open list items
	table  *markdownTable
}

type markdownTable struct {
	rows [][]string
	row  []string
	cell *strings.Builder
}

func NewMarkdownTarget() *MarkdownTarget {
	return &MarkdownTarget{}
}

func (m *MarkdownTarget) String() string {
	s := strings.TrimRight(m.doc.String(), "\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}

// sink is the cell being collected while inside a table, the document otherwise.
func (m *MarkdownTarget) sink() *strings.Builder {
	if m.table != nil && m.table.cell != nil {
		return m.table.cell
	}
	return &m.doc
}

func (m *MarkdownTarget) write(s string) {
	if m.table != nil && m.table.cell == nil {
		// Table structure outside a cell carries no text.
		return
	}
	m.sink().WriteString(s)
}

func (m *MarkdownTarget) ensureNewline() {
	s := m.sink().String()
	if s != "" && s[len(s)-1] != '\n' {
		m.write("\n")
	}
}

// endBlock leaves exactly one blank line after a top level block.
func (m *MarkdownTarget) endBlock() {
	if m.items > 0 || m.quote > 0 || m.table != nil {
		return
	}
	s := m.doc.String()
	switch {
	case s == "" || strings.HasSuffix(s, "\n\n"):
	case strings.HasSuffix(s, "\n"):
		m.write("\n")
	default:
		m.write("\n\n")
	}
}

func (m *MarkdownTarget) NoContent() {}

func (m *MarkdownTarget) Open(b Block) {
	if b.Kind == BlockCode {
		if m.inCode == 0 {
			m.endBlock()
			m.ensureNewline()
			m.write("```" + b.Language + "\n")
		}
		m.inCode++
		return
	}
	if m.inCode > 0 {
		return
	}

	switch b.Kind {
	case BlockParagraph:
		m.endBlock()
		if align := alignStyle(b.Align); align != "" {
			m.write(fmt.Sprintf("<div align=\"%s\">", align))
		}

	case BlockHeading:
		m.endBlock()
		m.write(strings.Repeat("#", b.Level) + " ")

	case BlockList:
		m.ensureNewline()

	case BlockListItem:
		m.items++
		if b.Nested {
			return
		}
		m.ensureNewline()
		m.write(strings.Repeat("  ", b.ListDepth))
		switch b.List {
		case ListNumber:
			m.write(fmt.Sprintf("%d. ", b.Number))
		case ListCheck:
			if b.Checked {
				m.write("- [x] ")
			} else {
				m.write("- [ ] ")
			}
		default:
			m.write("- ")
		}

	case BlockQuote:
		m.endBlock()
		m.quote++
		m.write("> ")

	case BlockLink:
		if b.Href != "" {
			m.write("[")
		}

	case BlockTable:
		m.ensureNewline()
		m.table = &markdownTable{}

	case BlockTableRow:
		if m.table != nil {
			m.table.row = nil
		}

	case BlockTableCell:
		if m.table != nil {
			m.table.cell = &strings.Builder{}
		}
	}
}

func (m *MarkdownTarget) Close(b Block) {
	if b.Kind == BlockCode {
		m.inCode--
		if m.inCode == 0 {
			m.ensureNewline()
			m.write("```")
			m.endBlock()
		}
		return
	}
	if m.inCode > 0 {
		return
	}

	switch b.Kind {
	case BlockParagraph:
		if alignStyle(b.Align) != "" {
			m.write("</div>")
		}
		m.endBlock()

	case BlockHeading:
		m.endBlock()

	case BlockList:
		if b.ListDepth == 0 {
			m.endBlock()
		}

	case BlockListItem:
		m.items--
		if !b.Nested {
			m.ensureNewline()
		}

	case BlockQuote:
		m.quote--
		m.endBlock()

	case BlockLink:
		if b.Href != "" {
			m.write(fmt.Sprintf("](%s)", markdownDestination(b.Href)))
		}

	case BlockTableCell:
		if m.table != nil && m.table.cell != nil {
			content := strings.TrimSpace(strings.ReplaceAll(m.table.cell.String(), "\n", " "))
			m.table.row = append(m.table.row, content)
			m.table.cell = nil
		}

	case BlockTableRow:
		if m.table != nil {
			m.table.rows = append(m.table.rows, m.table.row)
			m.table.row = nil
		}

	case BlockTable:
		if m.table != nil {
			rows := m.table.rows
			m.table = nil
			m.writeTable(rows)
		}
	}
}

// writeTable uses the first row as the header row.
func (m *MarkdownTarget) writeTable(rows [][]string) {
	if len(rows) == 0 {
		return
	}

	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	if maxCols == 0 {
		return
	}

	writeRow := func(row []string) {
		m.write("|")
		for i := 0; i < maxCols; i++ {
			if i < len(row) {
				m.write(" " + row[i] + " |")
			} else {
				m.write("  |")
			}
		}
		m.write("\n")
	}

	writeRow(rows[0])
	m.write("|")
	for i := 0; i < maxCols; i++ {
		m.write("---|")
	}
	m.write("\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	m.endBlock()
}

func (m *MarkdownTarget) OpenMark(f Format) {
	if m.inCode == 0 {
		m.write(markdownMarks[f][0])
	}
}

func (m *MarkdownTarget) CloseMark(f Format) {
	if m.inCode == 0 {
		m.write(markdownMarks[f][1])
	}
}

func (m *MarkdownTarget) Text(text string, style StyleMap) {
	if css := style.CSS(); css != "" && m.inCode == 0 {
		m.write(fmt.Sprintf("<span style=\"%s\">%s</span>", css, text))
		return
	}
	m.write(text)
}

func (m *MarkdownTarget) LineBreak() {
	switch {
	case m.inCode > 0:
		m.write("\n")
	case m.quote > 0:
		m.write("\n> ")
	default:
		m.write("  \n")
	}
}

func (m *MarkdownTarget) Image(a Asset) {
	if m.inCode == 0 {
		m.write(fmt.Sprintf("![%s](%s)", markdownLabel(a.Alt), markdownDestination(a.URL)))
	}
}

func (m *MarkdownTarget) Rule() {
	if m.inCode == 0 {
		m.endBlock()
		m.ensureNewline()
		m.write("---")
		m.endBlock()
	}
}

var (
	destinationEscaper = strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`, " ", "%20", "<", "%3C", ">", "%3E", "\n", "%0A")
	labelEscaper       = strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`, "\n", " ")
)

// markdownDestination escapes a link or image URL so it cannot end the
// destination early.
func markdownDestination(url string) string {
	return destinationEscaper.Replace(url)
}

// markdownLabel escapes image alt text so it cannot close the label.
func markdownLabel(text string) string {
	return labelEscaper.Replace(text)
}
