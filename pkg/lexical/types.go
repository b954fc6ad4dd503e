package lexical

// Document is the root value stored for a rich-text field.
// A nil Root means the stored value had no usable root.children list.
type Document struct {
	Root *Root

	// Truncated is set when decoding stopped descending because the
	// source nested deeper than decodeMaxDepth.
	Truncated bool
}

// Node is implemented by every node variant. The set of variants is closed;
// anything the decoder does not recognize becomes *Unknown.
type Node interface {
	NodeType() string
	node()
}

type Root struct {
	Direction string
	Format    string
	Indent    int
	Version   int
	Children  []Node
}

type Paragraph struct {
	Align    string // "", "left", "center", "right", "justify", "start", "end"
	Indent   int
	Children []Node
}

// Heading keeps the tag exactly as stored; HeadingLevel normalizes it.
type Heading struct {
	Tag      string
	Children []Node
}

type ListKind string

const (
	ListBullet ListKind = "bullet"
	ListNumber ListKind = "number"
	ListCheck  ListKind = "check"
)

type List struct {
	Kind     ListKind
	Start    int
	Children []Node
}

type ListItem struct {
	Value    int // explicit ordered position, 0 when absent
	Checked  bool
	Children []Node
}

type Quote struct {
	Children []Node
}

// CodeBlock children are rendered verbatim: text formats inside are ignored.
type CodeBlock struct {
	Language string
	Children []Node
}

// Link covers both "link" and "autolink" nodes.
type Link struct {
	URL      string
	Rel      string
	Title    string
	NewTab   bool
	Auto     bool
	Children []Node
}

type LineBreak struct{}

// Upload references an embedded media asset. Asset is nil when the stored
// value only carried an id (Ref) and was never populated.
type Upload struct {
	Ref   string
	Asset *Asset
}

type Asset struct {
	URL      string
	Alt      string
	MimeType string
	Width    int
	Height   int
}

type Text struct {
	Text   string
	Format Format
	Style  string
}

type HorizontalRule struct{}

type Table struct {
	Children []Node
}

type TableRow struct {
	Children []Node
}

type TableCell struct {
	Header   bool
	ColSpan  int
	Children []Node
}

// Unknown carries any node type the decoder does not know. Children is nil
// when the stored node had no children list, and non-nil (possibly empty)
// when it had one.
type Unknown struct {
	Type     string
	Children []Node
}

func (*Root) NodeType() string           { return "root" }
func (*Paragraph) NodeType() string      { return "paragraph" }
func (*Heading) NodeType() string        { return "heading" }
func (*List) NodeType() string           { return "list" }
func (*ListItem) NodeType() string       { return "listitem" }
func (*Quote) NodeType() string          { return "quote" }
func (*CodeBlock) NodeType() string      { return "code" }
func (*LineBreak) NodeType() string      { return "linebreak" }
func (*Upload) NodeType() string         { return "upload" }
func (*Text) NodeType() string           { return "text" }
func (*HorizontalRule) NodeType() string { return "horizontalrule" }
func (*Table) NodeType() string          { return "table" }
func (*TableRow) NodeType() string       { return "tablerow" }
func (*TableCell) NodeType() string      { return "tablecell" }
func (n *Unknown) NodeType() string      { return n.Type }

func (l *Link) NodeType() string {
	if l.Auto {
		return "autolink"
	}
	return "link"
}

func (*Root) node()           {}
func (*Paragraph) node()      {}
func (*Heading) node()        {}
func (*List) node()           {}
func (*ListItem) node()       {}
func (*Quote) node()          {}
func (*CodeBlock) node()      {}
func (*Link) node()           {}
func (*LineBreak) node()      {}
func (*Upload) node()         {}
func (*Text) node()           {}
func (*HorizontalRule) node() {}
func (*Table) node()          {}
func (*TableRow) node()       {}
func (*TableCell) node()      {}
func (*Unknown) node()        {}

// Children returns the child list of n, or nil for leaves.
func Children(n Node) []Node {
	switch v := n.(type) {
	case *Root:
		return v.Children
	case *Paragraph:
		return v.Children
	case *Heading:
		return v.Children
	case *List:
		return v.Children
	case *ListItem:
		return v.Children
	case *Quote:
		return v.Children
	case *CodeBlock:
		return v.Children
	case *Link:
		return v.Children
	case *Table:
		return v.Children
	case *TableRow:
		return v.Children
	case *TableCell:
		return v.Children
	case *Unknown:
		return v.Children
	}
	return nil
}

// HeadingLevel maps a heading tag to its rank. Tags outside h1..h6 report
// ok=false and the default rank 2.
func HeadingLevel(tag string) (level int, ok bool) {
	if len(tag) == 2 && (tag[0] == 'h' || tag[0] == 'H') && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0'), true
	}
	return 2, false
}
