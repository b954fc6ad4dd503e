package entity

import "agency-site-be/pkg/lexical"

type RenderFormat string

const (
	RenderFormatHTML     RenderFormat = "html"
	RenderFormatMarkdown RenderFormat = "markdown"
	RenderFormatText     RenderFormat = "text"
	RenderFormatTree     RenderFormat = "tree"
)

func (f RenderFormat) Valid() bool {
	switch f {
	case RenderFormatHTML, RenderFormatMarkdown, RenderFormatText, RenderFormatTree:
		return true
	}
	return false
}

// RenderedDocument is a stored document rendered to one format. Body holds
// html, markdown or text output; Tree is set for the tree format only.
type RenderedDocument struct {
	Format   RenderFormat       `json:"format"`
	Body     string             `json:"body,omitempty"`
	Tree     []*lexical.Element `json:"tree,omitempty"`
	Empty    bool               `json:"empty"`
	Warnings []lexical.Warning  `json:"warnings,omitempty"`
}
