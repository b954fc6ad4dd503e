package lexical

import (
	"encoding/json"
)

// Encode serializes a document back into the stored JSON shape.
// A document without a root encodes as an empty root so the stored value is
// always a well formed document.
func Encode(doc *Document) ([]byte, error) {
	root := &Root{Direction: "ltr", Version: 1, Children: []Node{}}
	if doc != nil && doc.Root != nil {
		root = doc.Root
	}

	return json.Marshal(map[string]interface{}{
		"root": map[string]interface{}{
			"type":      "root",
			"direction": root.Direction,
			"format":    root.Format,
			"indent":    root.Indent,
			"version":   maxInt(root.Version, 1),
			"children":  encodeChildren(root.Children),
		},
	})
}

func encodeChildren(nodes []Node) []interface{} {
	out := make([]interface{}, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, encodeNode(n))
	}
	return out
}

func encodeNode(n Node) map[string]interface{} {
	m := map[string]interface{}{
		"type":    n.NodeType(),
		"version": 1,
	}

	switch v := n.(type) {
	case *Text:
		m["text"] = v.Text
		m["format"] = int(v.Format)
		m["style"] = v.Style
		m["detail"] = 0
		m["mode"] = "normal"

	case *Paragraph:
		m["format"] = v.Align
		m["indent"] = v.Indent
		m["direction"] = "ltr"
		m["children"] = encodeChildren(v.Children)

	case *Heading:
		m["tag"] = v.Tag
		m["format"] = ""
		m["indent"] = 0
		m["direction"] = "ltr"
		m["children"] = encodeChildren(v.Children)

	case *List:
		tag := "ul"
		if v.Kind == ListNumber {
			tag = "ol"
		}
		m["listType"] = string(v.Kind)
		m["start"] = maxInt(v.Start, 1)
		m["tag"] = tag
		m["children"] = encodeChildren(v.Children)

	case *ListItem:
		m["value"] = v.Value
		if v.Checked {
			m["checked"] = true
		}
		m["children"] = encodeChildren(v.Children)

	case *Quote:
		m["children"] = encodeChildren(v.Children)

	case *CodeBlock:
		m["language"] = v.Language
		m["children"] = encodeChildren(v.Children)

	case *Link:
		m["url"] = v.URL
		if v.Rel != "" {
			m["rel"] = v.Rel
		}
		if v.Title != "" {
			m["title"] = v.Title
		}
		if v.NewTab {
			m["target"] = "_blank"
		}
		m["children"] = encodeChildren(v.Children)

	case *Upload:
		m["relationTo"] = "media"
		if v.Asset == nil {
			m["value"] = v.Ref
			break
		}
		value := map[string]interface{}{
			"url": v.Asset.URL,
			"alt": v.Asset.Alt,
		}
		if v.Ref != "" {
			value["id"] = v.Ref
		}
		if v.Asset.MimeType != "" {
			value["mimeType"] = v.Asset.MimeType
		}
		if v.Asset.Width > 0 {
			value["width"] = v.Asset.Width
		}
		if v.Asset.Height > 0 {
			value["height"] = v.Asset.Height
		}
		m["value"] = value

	case *Table:
		m["children"] = encodeChildren(v.Children)

	case *TableRow:
		m["children"] = encodeChildren(v.Children)

	case *TableCell:
		header := 0
		if v.Header {
			header = 1
		}
		m["headerState"] = header
		m["colSpan"] = maxInt(v.ColSpan, 1)
		m["children"] = encodeChildren(v.Children)

	case *Unknown:
		if v.Children != nil {
			m["children"] = encodeChildren(v.Children)
		}
	}

	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
