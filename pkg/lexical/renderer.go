package lexical

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	DefaultMaxDepth = 64
	DefaultMaxNodes = 20000

	// relNewTab is required on every link that opens a new browsing context.
	relNewTab = "noopener noreferrer"
)

// BlockKind identifies the wrapper a Target is asked to open.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockList
	BlockListItem
	BlockQuote
	BlockCode
	BlockLink
	BlockTable
	BlockTableRow
	BlockTableCell
	BlockGeneric
)

// Block is a container node with every rendering decision already made:
// heading rank normalized, list numbering resolved, link safety applied.
// Targets only translate it into their output format.
type Block struct {
	Kind BlockKind

	Level int    // heading rank 1..6
	Align string // paragraph alignment

	List      ListKind // list kind, also set on list items
	Start     int      // first number of an ordered list
	Number    int      // resolved position of an ordered list item
	Checked   bool     // check list item state
	Nested    bool     // list item holding only nested lists
	ListDepth int      // 0 for top level lists and their items

	Href   string // link target, empty when the URL was rejected
	Rel    string
	Target string // "_blank" for new tab links
	Title  string

	Language string // code block language

	Header  bool // table header cell
	ColSpan int

	Type   string // original node type of a generic wrapper
	Inline bool   // generic wrapper below the top level
}

// Target receives the flattened rendering of a document. Calls arrive in
// document order; Open and Close, OpenMark and CloseMark are always balanced.
type Target interface {
	// NoContent is the only call made for a document without usable content.
	NoContent()
	Open(b Block)
	Close(b Block)
	OpenMark(m Format)
	CloseMark(m Format)
	// Text carries literal text. Inside a code block it arrives without marks
	// and with an empty style.
	Text(text string, style StyleMap)
	LineBreak()
	Image(a Asset)
	Rule()
}

// AssetResolver resolves uploads that only reference their asset by id.
type AssetResolver interface {
	ResolveAsset(ref string) (*Asset, bool)
}

// AssetMap is an AssetResolver backed by a prefetched map.
type AssetMap map[string]*Asset

func (m AssetMap) ResolveAsset(ref string) (*Asset, bool) {
	a, ok := m[ref]
	return a, ok && a != nil
}

// Renderer walks documents into Targets. It holds no per-call state and is
// safe for concurrent use.
type Renderer struct {
	maxDepth int
	maxNodes int
	resolver AssetResolver
}

type Option func(*Renderer)

// WithMaxDepth caps nesting depth; deeper subtrees are dropped with a warning.
func WithMaxDepth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithMaxNodes caps the number of nodes visited per render.
func WithMaxNodes(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxNodes = n
		}
	}
}

func WithAssetResolver(resolver AssetResolver) Option {
	return func(r *Renderer) {
		r.resolver = resolver
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		maxDepth: DefaultMaxDepth,
		maxNodes: DefaultMaxNodes,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// With returns a copy of r with extra options applied.
func (r *Renderer) With(opts ...Option) *Renderer {
	cp := *r
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// Render walks doc depth first into t. It never panics on malformed input:
// every problem degrades to an omitted node and a Warning.
func (r *Renderer) Render(doc *Document, t Target) Result {
	if doc == nil || doc.Root == nil || doc.Root.Children == nil {
		t.NoContent()
		return Result{Empty: true}
	}

	w := &walker{r: r, t: t}
	if doc.Truncated {
		w.warn(WarningDepthLimit, "root", "document nesting exceeded the decoder limit")
	}
	for _, child := range doc.Root.Children {
		w.walk(child, 1, false, nil)
	}
	w.res.Nodes = w.nodes
	return w.res
}

type walker struct {
	r         *Renderer
	t         Target
	res       Result
	nodes     int
	listDepth int

	depthWarned  bool
	budgetWarned bool
}

func (w *walker) warn(typ WarningType, nodeType, msg string) {
	w.res.Warnings = append(w.res.Warnings, Warning{Type: typ, NodeType: nodeType, Message: msg})
}

// admit enforces the depth cap and node budget before a node is rendered.
func (w *walker) admit(n Node, depth int) bool {
	if depth > w.r.maxDepth {
		if !w.depthWarned {
			w.depthWarned = true
			w.warn(WarningDepthLimit, n.NodeType(), fmt.Sprintf("subtree deeper than %d dropped", w.r.maxDepth))
		}
		return false
	}
	if w.nodes >= w.r.maxNodes {
		if !w.budgetWarned {
			w.budgetWarned = true
			w.warn(WarningNodeBudget, n.NodeType(), fmt.Sprintf("node budget of %d exhausted", w.r.maxNodes))
		}
		return false
	}
	w.nodes++
	return true
}

// walk renders n. code is true inside a code block; item carries the
// resolved list item block when n is a direct child of a list.
func (w *walker) walk(n Node, depth int, code bool, item *Block) {
	if n == nil || !w.admit(n, depth) {
		return
	}

	switch v := n.(type) {
	case *Text:
		w.text(v, code)

	case *LineBreak:
		w.t.LineBreak()

	case *Paragraph:
		w.container(Block{Kind: BlockParagraph, Align: v.Align}, v.Children, depth, code)

	case *Heading:
		level, ok := HeadingLevel(v.Tag)
		if !ok {
			w.warn(WarningHeadingFallback, "heading", fmt.Sprintf("unsupported heading tag %q rendered as h2", v.Tag))
		}
		w.container(Block{Kind: BlockHeading, Level: level}, v.Children, depth, code)

	case *List:
		w.list(v, depth, code)

	case *ListItem:
		b := Block{Kind: BlockListItem, List: ListBullet, ListDepth: w.itemDepth()}
		if item != nil {
			b = *item
		}
		b.Checked = v.Checked
		w.container(b, v.Children, depth, code)

	case *Quote:
		w.container(Block{Kind: BlockQuote}, v.Children, depth, code)

	case *CodeBlock:
		w.container(Block{Kind: BlockCode, Language: v.Language}, v.Children, depth, true)

	case *Link:
		w.container(w.link(v), v.Children, depth, code)

	case *Upload:
		w.upload(v)

	case *HorizontalRule:
		w.t.Rule()

	case *Table:
		w.container(Block{Kind: BlockTable}, v.Children, depth, code)

	case *TableRow:
		w.container(Block{Kind: BlockTableRow}, v.Children, depth, code)

	case *TableCell:
		w.container(Block{Kind: BlockTableCell, Header: v.Header, ColSpan: v.ColSpan}, v.Children, depth, code)

	case *Unknown:
		if v.Children == nil {
			w.warn(WarningUnknownNode, v.Type, "childless unknown node omitted")
			return
		}
		w.warn(WarningUnknownNode, v.Type, "unknown node rendered as generic wrapper")
		w.container(Block{Kind: BlockGeneric, Type: v.Type, Inline: depth > 1}, v.Children, depth, code)

	default:
		// Root nested below the top level, or any future variant.
		children := Children(n)
		if children == nil {
			return
		}
		w.container(Block{Kind: BlockGeneric, Type: n.NodeType(), Inline: depth > 1}, children, depth, code)
	}
}

func (w *walker) container(b Block, children []Node, depth int, code bool) {
	w.t.Open(b)
	for _, child := range children {
		w.walk(child, depth+1, code, nil)
	}
	w.t.Close(b)
}

func (w *walker) text(v *Text, code bool) {
	if code {
		w.t.Text(v.Text, nil)
		return
	}

	marks := v.Format.Marks()
	for i := len(marks) - 1; i >= 0; i-- {
		w.t.OpenMark(marks[i])
	}
	w.t.Text(v.Text, ParseStyle(v.Style))
	for _, m := range marks {
		w.t.CloseMark(m)
	}
}

func (w *walker) itemDepth() int {
	if w.listDepth == 0 {
		return 0
	}
	return w.listDepth - 1
}

func (w *walker) list(v *List, depth int, code bool) {
	kind := v.Kind
	switch kind {
	case ListBullet, ListNumber, ListCheck:
	default:
		w.warn(WarningListFallback, "list", fmt.Sprintf("unsupported list kind %q rendered as bullet", v.Kind))
		kind = ListBullet
	}

	start := v.Start
	if start <= 0 {
		start = 1
	}

	b := Block{Kind: BlockList, List: kind, Start: start, ListDepth: w.listDepth}
	w.t.Open(b)
	w.listDepth++

	number := start
	for _, child := range v.Children {
		li, ok := child.(*ListItem)
		if !ok {
			w.walk(child, depth+1, code, nil)
			continue
		}

		item := Block{Kind: BlockListItem, List: kind, ListDepth: b.ListDepth, Nested: nestedOnly(li)}
		if !item.Nested {
			if kind == ListNumber && li.Value > 0 {
				number = li.Value
			}
			item.Number = number
			number++
		}
		w.walk(li, depth+1, code, &item)
	}

	w.listDepth--
	w.t.Close(b)
}

// nestedOnly reports whether a list item exists only to hold nested lists.
func nestedOnly(li *ListItem) bool {
	if len(li.Children) == 0 {
		return false
	}
	for _, c := range li.Children {
		if _, ok := c.(*List); !ok {
			return false
		}
	}
	return true
}

func (w *walker) link(v *Link) Block {
	b := Block{Kind: BlockLink, Title: v.Title}

	href, ok := safeHref(v.URL)
	if !ok {
		w.warn(WarningUnsafeURL, v.NodeType(), fmt.Sprintf("link target %q dropped", v.URL))
	}
	b.Href = href

	rel := stripRel(v.Rel, "noopener", "noreferrer")
	if v.NewTab {
		b.Target = "_blank"
		rel = strings.TrimSpace(rel + " " + relNewTab)
	}
	b.Rel = rel
	return b
}

func (w *walker) upload(v *Upload) {
	asset := v.Asset
	if (asset == nil || asset.URL == "") && v.Ref != "" && w.r.resolver != nil {
		if resolved, ok := w.r.resolver.ResolveAsset(v.Ref); ok {
			asset = resolved
		}
	}
	if asset == nil || asset.URL == "" {
		w.warn(WarningUnresolvedAsset, "upload", fmt.Sprintf("asset %q has no url", v.Ref))
		return
	}
	src, ok := safeHref(asset.URL)
	if !ok {
		w.warn(WarningUnsafeURL, "upload", fmt.Sprintf("asset url %q dropped", asset.URL))
		return
	}

	a := *asset
	a.URL = src
	w.t.Image(a)
}

// safeHref accepts relative references and http, https, mailto and tel URLs.
func safeHref(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", true
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return s, true
	}
	return "", false
}

func stripRel(rel string, drop ...string) string {
	var kept []string
	for _, token := range strings.Fields(rel) {
		keep := true
		for _, d := range drop {
			if strings.EqualFold(token, d) {
				keep = false
				break
			}
		}
		if keep {
			kept = append(kept, token)
		}
	}
	return strings.Join(kept, " ")
}
