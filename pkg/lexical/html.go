package lexical

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// EmptyHTML is the marker written for documents without usable content.
const EmptyHTML = `<div class="rich-text-empty"></div>`

// HeadingClasses gives each heading rank its visual weight.
var HeadingClasses = [7]string{
	1: "text-4xl font-bold",
	2: "text-3xl font-semibold",
	3: "text-2xl font-semibold",
	4: "text-xl font-medium",
	5: "text-lg font-medium",
	6: "text-base font-medium",
}

var markTags = map[Format]string{
	FormatCode:          "code",
	FormatBold:          "strong",
	FormatItalic:        "em",
	FormatStrikethrough: "s",
	FormatUnderline:     "u",
	FormatSubscript:     "sub",
	FormatSuperscript:   "sup",
	FormatHighlight:     "mark",
}

// HTMLTarget renders an HTML fragment.
type HTMLTarget struct {
	sb strings.Builder

	highlight bool
	style     string

	// Code block text is buffered so it can be highlighted as a whole.
	code   strings.Builder
	inCode int
}

type HTMLOption func(*HTMLTarget)

// WithHighlighting toggles chroma highlighting of code blocks with a known language.
func WithHighlighting(enabled bool) HTMLOption {
	return func(h *HTMLTarget) {
		h.highlight = enabled
	}
}

// WithHighlightStyle selects the chroma style name. Unknown names use chroma's fallback.
func WithHighlightStyle(name string) HTMLOption {
	return func(h *HTMLTarget) {
		h.style = name
	}
}

func NewHTMLTarget(opts ...HTMLOption) *HTMLTarget {
	h := &HTMLTarget{highlight: true, style: "github"}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *HTMLTarget) String() string {
	return h.sb.String()
}

func (h *HTMLTarget) NoContent() {
	h.sb.WriteString(EmptyHTML)
}

func (h *HTMLTarget) Open(b Block) {
	if b.Kind == BlockCode {
		if h.inCode == 0 {
			h.code.Reset()
		}
		h.inCode++
		return
	}
	if h.inCode > 0 {
		return
	}

	switch b.Kind {
	case BlockParagraph:
		if align := alignStyle(b.Align); align != "" {
			fmt.Fprintf(&h.sb, `<p style="text-align: %s">`, align)
		} else {
			h.sb.WriteString("<p>")
		}

	case BlockHeading:
		fmt.Fprintf(&h.sb, `<h%d class="%s">`, b.Level, HeadingClasses[b.Level])

	case BlockList:
		switch {
		case b.List == ListNumber && b.Start != 1:
			fmt.Fprintf(&h.sb, `<ol start="%d">`, b.Start)
		case b.List == ListNumber:
			h.sb.WriteString("<ol>")
		case b.List == ListCheck:
			h.sb.WriteString(`<ul class="checklist">`)
		default:
			h.sb.WriteString("<ul>")
		}

	case BlockListItem:
		switch {
		case b.Nested:
			h.sb.WriteString(`<li class="nested-list-item">`)
		case b.List == ListCheck:
			fmt.Fprintf(&h.sb, `<li role="checkbox" aria-checked="%t">`, b.Checked)
		case b.List == ListNumber:
			fmt.Fprintf(&h.sb, `<li value="%d">`, b.Number)
		default:
			h.sb.WriteString("<li>")
		}

	case BlockQuote:
		h.sb.WriteString("<blockquote>")

	case BlockLink:
		h.sb.WriteString("<a")
		if b.Href != "" {
			fmt.Fprintf(&h.sb, ` href="%s"`, html.EscapeString(b.Href))
		}
		if b.Title != "" {
			fmt.Fprintf(&h.sb, ` title="%s"`, html.EscapeString(b.Title))
		}
		if b.Target != "" {
			fmt.Fprintf(&h.sb, ` target="%s"`, b.Target)
		}
		if b.Rel != "" {
			fmt.Fprintf(&h.sb, ` rel="%s"`, html.EscapeString(b.Rel))
		}
		h.sb.WriteString(">")

	case BlockTable:
		h.sb.WriteString("<table>")

	case BlockTableRow:
		h.sb.WriteString("<tr>")

	case BlockTableCell:
		tag := "td"
		if b.Header {
			tag = "th"
		}
		if b.ColSpan > 1 {
			fmt.Fprintf(&h.sb, `<%s colspan="%d">`, tag, b.ColSpan)
		} else {
			fmt.Fprintf(&h.sb, "<%s>", tag)
		}

	case BlockGeneric:
		fmt.Fprintf(&h.sb, `<%s data-lexical-type="%s">`, genericTag(b), html.EscapeString(b.Type))
	}
}

func (h *HTMLTarget) Close(b Block) {
	if b.Kind == BlockCode {
		h.inCode--
		if h.inCode == 0 {
			h.writeCode(b.Language, h.code.String())
		}
		return
	}
	if h.inCode > 0 {
		return
	}

	switch b.Kind {
	case BlockParagraph:
		h.sb.WriteString("</p>")
	case BlockHeading:
		fmt.Fprintf(&h.sb, "</h%d>", b.Level)
	case BlockList:
		if b.List == ListNumber {
			h.sb.WriteString("</ol>")
		} else {
			h.sb.WriteString("</ul>")
		}
	case BlockListItem:
		h.sb.WriteString("</li>")
	case BlockQuote:
		h.sb.WriteString("</blockquote>")
	case BlockLink:
		h.sb.WriteString("</a>")
	case BlockTable:
		h.sb.WriteString("</table>")
	case BlockTableRow:
		h.sb.WriteString("</tr>")
	case BlockTableCell:
		if b.Header {
			h.sb.WriteString("</th>")
		} else {
			h.sb.WriteString("</td>")
		}
	case BlockGeneric:
		fmt.Fprintf(&h.sb, "</%s>", genericTag(b))
	}
}

func (h *HTMLTarget) OpenMark(m Format) {
	if h.inCode == 0 {
		fmt.Fprintf(&h.sb, "<%s>", markTags[m])
	}
}

func (h *HTMLTarget) CloseMark(m Format) {
	if h.inCode == 0 {
		fmt.Fprintf(&h.sb, "</%s>", markTags[m])
	}
}

func (h *HTMLTarget) Text(text string, style StyleMap) {
	if h.inCode > 0 {
		h.code.WriteString(text)
		return
	}
	if css := style.CSS(); css != "" {
		fmt.Fprintf(&h.sb, `<span style="%s">%s</span>`, html.EscapeString(css), html.EscapeString(text))
		return
	}
	h.sb.WriteString(html.EscapeString(text))
}

func (h *HTMLTarget) LineBreak() {
	if h.inCode > 0 {
		h.code.WriteString("\n")
		return
	}
	h.sb.WriteString("<br>")
}

func (h *HTMLTarget) Image(a Asset) {
	if h.inCode > 0 {
		return
	}
	fmt.Fprintf(&h.sb, `<figure><img src="%s" alt="%s"`, html.EscapeString(a.URL), html.EscapeString(a.Alt))
	if a.Width > 0 && a.Height > 0 {
		fmt.Fprintf(&h.sb, ` width="%d" height="%d"`, a.Width, a.Height)
	}
	h.sb.WriteString(` loading="lazy">`)
	if a.Alt != "" {
		fmt.Fprintf(&h.sb, "<figcaption>%s</figcaption>", html.EscapeString(a.Alt))
	}
	h.sb.WriteString("</figure>")
}

func (h *HTMLTarget) Rule() {
	if h.inCode == 0 {
		h.sb.WriteString("<hr>")
	}
}

func (h *HTMLTarget) writeCode(lang, code string) {
	if h.highlight && lang != "" {
		if out, ok := highlight(lang, code, h.style); ok {
			h.sb.WriteString(out)
			return
		}
	}

	h.sb.WriteString("<pre><code")
	if lang != "" {
		fmt.Fprintf(&h.sb, ` class="language-%s"`, html.EscapeString(lang))
	}
	h.sb.WriteString(">")
	h.sb.WriteString(html.EscapeString(code))
	h.sb.WriteString("</code></pre>")
}

func highlight(lang, code, styleName string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}

	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var buf strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.Format(&buf, styles.Get(styleName), iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}

func alignStyle(align string) string {
	switch align {
	case "center", "right", "justify", "end":
		return align
	}
	return ""
}

func genericTag(b Block) string {
	if b.Inline {
		return "span"
	}
	return "div"
}
