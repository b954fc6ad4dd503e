package lexical

// Result summarizes one render.
type Result struct {
	// Empty is set when the document had no usable content and the target
	// received NoContent.
	Empty    bool      `json:"empty"`
	Nodes    int       `json:"nodes"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes non-fatal render problems.
type WarningType string

const (
	WarningUnknownNode     WarningType = "unknown_node"
	WarningUnresolvedAsset WarningType = "unresolved_asset"
	WarningHeadingFallback WarningType = "heading_fallback"
	WarningListFallback    WarningType = "list_fallback"
	WarningUnsafeURL       WarningType = "unsafe_url"
	WarningDepthLimit      WarningType = "depth_limit"
	WarningNodeBudget      WarningType = "node_budget"
)

// Warning is a problem the renderer degraded around instead of failing.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"node_type,omitempty"`
	Message  string      `json:"message"`
}

// HasWarning reports whether any warning of typ was recorded.
func (r Result) HasWarning(typ WarningType) bool {
	for _, w := range r.Warnings {
		if w.Type == typ {
			return true
		}
	}
	return false
}
