// Package lexical decodes and renders Lexical rich-text documents, the JSON
// tree the CMS stores for post bodies, job descriptions and rich-text globals.
//
// Rendering is a single depth-first walk (Renderer) that emits calls on a
// Target. HTMLTarget, MarkdownTarget, PlainTextTarget and TreeTarget are the
// built-in output formats.
package lexical

import (
	"strings"
)

var defaultRenderer = NewRenderer()

// RenderHTML decodes and renders stored content as an HTML fragment.
func RenderHTML(data []byte) string {
	t := NewHTMLTarget()
	defaultRenderer.Render(Decode(data), t)
	return t.String()
}

// RenderMarkdown decodes and renders stored content as markdown.
func RenderMarkdown(data []byte) string {
	t := NewMarkdownTarget()
	defaultRenderer.Render(Decode(data), t)
	return t.String()
}

// RenderPlainText decodes and renders stored content as plain text.
func RenderPlainText(data []byte) string {
	t := NewPlainTextTarget()
	defaultRenderer.Render(Decode(data), t)
	return t.String()
}

// RenderTree decodes and renders stored content as a presentation tree.
func RenderTree(data []byte) []*Element {
	t := NewTreeTarget()
	defaultRenderer.Render(Decode(data), t)
	return t.Elements()
}

// ParseContent returns markdown for content that looks like a document and
// the content unchanged otherwise (plain strings in legacy fields).
func ParseContent(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return content
	}

	doc := DecodeString(trimmed)
	if doc.Root == nil {
		return content
	}

	t := NewMarkdownTarget()
	defaultRenderer.Render(doc, t)
	return t.String()
}

// Walk visits every node in document order. Returning false from fn skips
// the children of that node.
func Walk(doc *Document, fn func(n Node, depth int) bool) {
	if doc == nil || doc.Root == nil {
		return
	}
	for _, child := range doc.Root.Children {
		walkNode(child, 1, fn)
	}
}

func walkNode(n Node, depth int, fn func(Node, int) bool) {
	if n == nil || depth > decodeMaxDepth || !fn(n, depth) {
		return
	}
	for _, child := range Children(n) {
		walkNode(child, depth+1, fn)
	}
}

// UploadRefs lists, once each and in document order, the asset ids of
// uploads whose asset was not populated in the stored document.
func UploadRefs(doc *Document) []string {
	var refs []string
	seen := map[string]bool{}
	Walk(doc, func(n Node, _ int) bool {
		up, ok := n.(*Upload)
		if ok && up.Ref != "" && (up.Asset == nil || up.Asset.URL == "") && !seen[up.Ref] {
			seen[up.Ref] = true
			refs = append(refs, up.Ref)
		}
		return true
	})
	return refs
}
