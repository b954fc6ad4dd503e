package lexical

import (
	"github.com/tidwall/gjson"
)

// decodeMaxDepth bounds recursion while decoding so adversarial nesting
// cannot exhaust the stack before the renderer's own limits apply.
const decodeMaxDepth = 512

// Decode reads a stored document. It never fails: invalid JSON, a missing
// root or a root without a children array all yield a Document with a nil Root.
// A JSON string holding a serialized document (double encoded content) is unwrapped once.
func Decode(data []byte) *Document {
	return decode(data, true)
}

// DecodeString is Decode for string content.
func DecodeString(content string) *Document {
	return Decode([]byte(content))
}

func decode(data []byte, unwrap bool) *Document {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return &Document{}
	}

	top := gjson.ParseBytes(data)
	if top.Type == gjson.String && unwrap {
		return decode([]byte(top.String()), false)
	}

	root := top.Get("root")
	if !root.IsObject() || !root.Get("children").IsArray() {
		return &Document{}
	}

	d := &decoder{}
	doc := &Document{
		Root: &Root{
			Direction: root.Get("direction").String(),
			Format:    stringField(root, "format"),
			Indent:    int(root.Get("indent").Int()),
			Version:   int(root.Get("version").Int()),
			Children:  d.children(root, 1),
		},
	}
	doc.Truncated = d.truncated
	return doc
}

type decoder struct {
	truncated bool
}

// children returns nil when r has no children array, and a non-nil slice otherwise.
func (d *decoder) children(r gjson.Result, depth int) []Node {
	raw := r.Get("children")
	if !raw.IsArray() {
		return nil
	}
	if depth > decodeMaxDepth {
		d.truncated = true
		return []Node{}
	}

	items := raw.Array()
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		nodes = append(nodes, d.node(item, depth))
	}
	return nodes
}

func (d *decoder) node(r gjson.Result, depth int) Node {
	typ := r.Get("type").String()

	switch typ {
	case "text", "code-highlight":
		return &Text{
			Text:   r.Get("text").String(),
			Format: numberFormat(r),
			Style:  r.Get("style").String(),
		}

	case "tab":
		return &Text{Text: "\t"}

	case "paragraph":
		return &Paragraph{
			Align:    stringField(r, "format"),
			Indent:   int(r.Get("indent").Int()),
			Children: d.nonNil(r, depth),
		}

	case "heading":
		return &Heading{
			Tag:      r.Get("tag").String(),
			Children: d.nonNil(r, depth),
		}

	case "list":
		kind := ListKind(r.Get("listType").String())
		if kind == "" && r.Get("tag").String() == "ol" {
			kind = ListNumber
		}
		return &List{
			Kind:     kind,
			Start:    int(r.Get("start").Int()),
			Children: d.nonNil(r, depth),
		}

	case "listitem":
		return &ListItem{
			Value:    int(r.Get("value").Int()),
			Checked:  r.Get("checked").Bool(),
			Children: d.nonNil(r, depth),
		}

	case "quote":
		return &Quote{Children: d.nonNil(r, depth)}

	case "code":
		return &CodeBlock{
			Language: r.Get("language").String(),
			Children: d.nonNil(r, depth),
		}

	case "link", "autolink":
		return &Link{
			URL:      linkURL(r),
			Rel:      r.Get("rel").String(),
			Title:    r.Get("title").String(),
			NewTab:   r.Get("fields.newTab").Bool() || r.Get("newTab").Bool() || r.Get("target").String() == "_blank",
			Auto:     typ == "autolink",
			Children: d.nonNil(r, depth),
		}

	case "linebreak":
		return &LineBreak{}

	case "upload":
		return decodeUpload(r)

	case "horizontalrule":
		return &HorizontalRule{}

	case "table":
		return &Table{Children: d.nonNil(r, depth)}

	case "tablerow":
		return &TableRow{Children: d.nonNil(r, depth)}

	case "tablecell":
		return &TableCell{
			Header:   r.Get("headerState").Int() != 0,
			ColSpan:  int(r.Get("colSpan").Int()),
			Children: d.nonNil(r, depth),
		}
	}

	return &Unknown{
		Type:     typ,
		Children: d.children(r, depth+1),
	}
}

// nonNil is children for known containers, which always render a wrapper.
func (d *decoder) nonNil(r gjson.Result, depth int) []Node {
	nodes := d.children(r, depth+1)
	if nodes == nil {
		return []Node{}
	}
	return nodes
}

func decodeUpload(r gjson.Result) *Upload {
	value := r.Get("value")
	if !value.IsObject() {
		// Unpopulated relationship: value is the bare asset id.
		return &Upload{Ref: value.String()}
	}

	up := &Upload{Ref: value.Get("id").String()}
	url := value.Get("url").String()
	if url == "" {
		return up
	}

	alt := value.Get("alt").String()
	if alt == "" {
		alt = r.Get("fields.alt").String()
	}
	up.Asset = &Asset{
		URL:      url,
		Alt:      alt,
		MimeType: value.Get("mimeType").String(),
		Width:    int(value.Get("width").Int()),
		Height:   int(value.Get("height").Int()),
	}
	return up
}

// linkURL reads the target from either the plain Lexical link shape or the
// CMS shape that nests it under fields. Internal CMS links point at a
// related document and resolve to /<collection>/<slug>.
func linkURL(r gjson.Result) string {
	if url := r.Get("url").String(); url != "" {
		return url
	}
	fields := r.Get("fields")
	if fields.Get("linkType").String() == "internal" {
		slug := fields.Get("doc.value.slug").String()
		collection := fields.Get("doc.relationTo").String()
		if slug != "" && collection != "" {
			return "/" + collection + "/" + slug
		}
	}
	return fields.Get("url").String()
}

// numberFormat reads the text format bitmask; anything non-numeric is no format.
func numberFormat(r gjson.Result) Format {
	f := r.Get("format")
	if f.Type != gjson.Number {
		return 0
	}
	return Format(f.Int())
}

// stringField reads a field that is only meaningful as a string
// (element alignment shares the "format" key with the text bitmask).
func stringField(r gjson.Result, key string) string {
	f := r.Get(key)
	if f.Type != gjson.String {
		return ""
	}
	return f.String()
}
