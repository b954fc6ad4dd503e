package lexical

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	gtext "github.com/yuin/goldmark/text"
	meta "github.com/yuin/goldmark-meta"
)

var markdownParser = goldmark.New(
	goldmark.WithExtensions(meta.Meta, extension.Strikethrough, extension.Linkify),
)

// FromMarkdown converts markdown into a document. YAML frontmatter, if any,
// is returned as the second value (never nil).
func FromMarkdown(src []byte) (*Document, map[string]interface{}) {
	ctx := parser.NewContext()
	tree := markdownParser.Parser().Parse(gtext.NewReader(src), parser.WithContext(ctx))

	frontmatter := meta.Get(ctx)
	if frontmatter == nil {
		frontmatter = map[string]interface{}{}
	}

	imp := &markdownImporter{src: src}
	root := &Root{Direction: "ltr", Version: 1, Children: []Node{}}
	for c := tree.FirstChild(); c != nil; c = c.NextSibling() {
		if n := imp.block(c); n != nil {
			root.Children = append(root.Children, n)
		}
	}
	return &Document{Root: root}, frontmatter
}

type markdownImporter struct {
	src []byte
}

func (m *markdownImporter) block(n ast.Node) Node {
	switch v := n.(type) {
	case *ast.Heading:
		return &Heading{Tag: fmt.Sprintf("h%d", v.Level), Children: m.inlines(v, 0)}

	case *ast.Paragraph, *ast.TextBlock:
		return &Paragraph{Children: m.inlines(v, 0)}

	case *ast.List:
		return m.list(v)

	case *ast.Blockquote:
		return &Quote{Children: m.flatten(v)}

	case *ast.FencedCodeBlock:
		return m.code(string(v.Language(m.src)), v.Lines())

	case *ast.CodeBlock:
		return m.code("", v.Lines())

	case *ast.ThematicBreak:
		return &HorizontalRule{}
	}
	return nil
}

func (m *markdownImporter) list(v *ast.List) *List {
	l := &List{Kind: ListBullet, Start: 1, Children: []Node{}}
	if v.IsOrdered() {
		l.Kind = ListNumber
		if v.Start > 0 {
			l.Start = v.Start
		}
	}
	for c := v.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*ast.ListItem); ok {
			l.Children = append(l.Children, &ListItem{Children: m.flatten(c)})
		}
	}
	return l
}

// flatten turns block children (paragraphs, nested lists) into the inline
// content a list item or quote holds, separating paragraphs with line breaks.
func (m *markdownImporter) flatten(parent ast.Node) []Node {
	out := []Node{}
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			if len(out) > 0 {
				if _, isList := out[len(out)-1].(*List); !isList {
					out = append(out, &LineBreak{})
				}
			}
			out = append(out, m.inlines(v, 0)...)
		case *ast.List:
			out = append(out, m.list(v))
		default:
			if n := m.block(c); n != nil {
				out = append(out, n)
			}
		}
	}
	return out
}

func (m *markdownImporter) code(lang string, lines *gtext.Segments) *CodeBlock {
	var buf bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(m.src))
	}

	cb := &CodeBlock{Language: lang, Children: []Node{}}
	for i, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if i > 0 {
			cb.Children = append(cb.Children, &LineBreak{})
		}
		if line != "" {
			cb.Children = append(cb.Children, &Text{Text: line})
		}
	}
	return cb
}

func (m *markdownImporter) inlines(parent ast.Node, format Format) []Node {
	out := []Node{}
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			value := string(v.Segment.Value(m.src))
			if v.SoftLineBreak() {
				value += " "
			}
			if value != "" {
				out = append(out, &Text{Text: value, Format: format})
			}
			if v.HardLineBreak() {
				out = append(out, &LineBreak{})
			}

		case *ast.String:
			out = append(out, &Text{Text: string(v.Value), Format: format})

		case *ast.Emphasis:
			flag := FormatItalic
			if v.Level >= 2 {
				flag = FormatBold
			}
			out = append(out, m.inlines(v, format|flag)...)

		case *east.Strikethrough:
			out = append(out, m.inlines(v, format|FormatStrikethrough)...)

		case *ast.CodeSpan:
			out = append(out, &Text{Text: m.plain(v), Format: format | FormatCode})

		case *ast.Link:
			out = append(out, &Link{
				URL:      string(v.Destination),
				Title:    string(v.Title),
				Children: m.inlines(v, format),
			})

		case *ast.AutoLink:
			out = append(out, &Link{
				URL:      string(v.URL(m.src)),
				Auto:     true,
				Children: []Node{&Text{Text: string(v.Label(m.src)), Format: format}},
			})

		case *ast.Image:
			out = append(out, &Upload{Asset: &Asset{
				URL: string(v.Destination),
				Alt: m.plain(v),
			}})

		case *ast.RawHTML:
			// dropped

		default:
			out = append(out, m.inlines(c, format)...)
		}
	}
	return out
}

// plain concatenates the literal text below n.
func (m *markdownImporter) plain(n ast.Node) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(m.src))
		case *ast.String:
			sb.Write(v.Value)
		default:
			sb.WriteString(m.plain(c))
		}
	}
	return sb.String()
}
