package lexical

import (
	"strconv"
)

// Element is one node of the presentation tree served to client-rendered pages.
type Element struct {
	Kind     string            `json:"kind"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []*Element        `json:"children,omitempty"`
}

// TreeTarget builds a presentation tree. Kinds: empty, paragraph, h1..h6,
// ul, ol, li, blockquote, pre, a, table, tr, th, td, div, span, text, br,
// image, hr, and one kind per mark (bold, italic, code ...).
type TreeTarget struct {
	root  Element
	stack []*Element
}

func NewTreeTarget() *TreeTarget {
	t := &TreeTarget{}
	t.stack = []*Element{&t.root}
	return t
}

// Elements returns the top level elements in document order.
func (t *TreeTarget) Elements() []*Element {
	if t.root.Children == nil {
		return []*Element{}
	}
	return t.root.Children
}

func (t *TreeTarget) top() *Element {
	return t.stack[len(t.stack)-1]
}

func (t *TreeTarget) push(e *Element) {
	parent := t.top()
	parent.Children = append(parent.Children, e)
	t.stack = append(t.stack, e)
}

func (t *TreeTarget) pop() {
	if len(t.stack) > 1 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

func (t *TreeTarget) leaf(e *Element) {
	parent := t.top()
	parent.Children = append(parent.Children, e)
}

func (t *TreeTarget) NoContent() {
	t.leaf(&Element{Kind: "empty"})
}

func (t *TreeTarget) Open(b Block) {
	e := &Element{}
	attrs := map[string]string{}

	switch b.Kind {
	case BlockParagraph:
		e.Kind = "paragraph"
		if align := alignStyle(b.Align); align != "" {
			attrs["align"] = align
		}
	case BlockHeading:
		e.Kind = "h" + strconv.Itoa(b.Level)
		attrs["class"] = HeadingClasses[b.Level]
	case BlockList:
		e.Kind = "ul"
		if b.List == ListNumber {
			e.Kind = "ol"
			attrs["start"] = strconv.Itoa(b.Start)
		}
		attrs["list"] = string(b.List)
	case BlockListItem:
		e.Kind = "li"
		switch {
		case b.Nested:
			attrs["nested"] = "true"
		case b.List == ListCheck:
			attrs["checked"] = strconv.FormatBool(b.Checked)
		case b.List == ListNumber:
			attrs["value"] = strconv.Itoa(b.Number)
		}
	case BlockQuote:
		e.Kind = "blockquote"
	case BlockCode:
		e.Kind = "pre"
		if b.Language != "" {
			attrs["language"] = b.Language
		}
	case BlockLink:
		e.Kind = "a"
		setAttr(attrs, "href", b.Href)
		setAttr(attrs, "title", b.Title)
		setAttr(attrs, "target", b.Target)
		setAttr(attrs, "rel", b.Rel)
	case BlockTable:
		e.Kind = "table"
	case BlockTableRow:
		e.Kind = "tr"
	case BlockTableCell:
		e.Kind = "td"
		if b.Header {
			e.Kind = "th"
		}
		if b.ColSpan > 1 {
			attrs["colspan"] = strconv.Itoa(b.ColSpan)
		}
	default:
		e.Kind = genericTag(b)
		attrs["type"] = b.Type
	}

	if len(attrs) > 0 {
		e.Attrs = attrs
	}
	t.push(e)
}

func (t *TreeTarget) Close(Block) {
	t.pop()
}

func (t *TreeTarget) OpenMark(m Format) {
	t.push(&Element{Kind: m.String()})
}

func (t *TreeTarget) CloseMark(Format) {
	t.pop()
}

func (t *TreeTarget) Text(text string, style StyleMap) {
	e := &Element{Kind: "text", Text: text}
	if css := style.CSS(); css != "" {
		e.Attrs = map[string]string{"style": css}
	}
	t.leaf(e)
}

func (t *TreeTarget) LineBreak() {
	t.leaf(&Element{Kind: "br"})
}

func (t *TreeTarget) Image(a Asset) {
	attrs := map[string]string{"src": a.URL, "alt": a.Alt}
	if a.Width > 0 && a.Height > 0 {
		attrs["width"] = strconv.Itoa(a.Width)
		attrs["height"] = strconv.Itoa(a.Height)
	}
	t.leaf(&Element{Kind: "image", Attrs: attrs})
}

func (t *TreeTarget) Rule() {
	t.leaf(&Element{Kind: "hr"})
}

func setAttr(attrs map[string]string, k, v string) {
	if v != "" {
		attrs[k] = v
	}
}
