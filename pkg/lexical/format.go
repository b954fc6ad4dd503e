package lexical

// Format is the text node bitmask. Flags are independent and combinable.
type Format int

const (
	FormatBold          Format = 1
	FormatItalic        Format = 1 << 1
	FormatStrikethrough Format = 1 << 2
	FormatUnderline     Format = 1 << 3
	FormatCode          Format = 1 << 4
	FormatSubscript     Format = 1 << 5
	FormatSuperscript   Format = 1 << 6
	FormatHighlight     Format = 1 << 7
)

// markOrder lists every flag from innermost to outermost wrapper.
// Every target sees marks opened in reverse of this order and closed in it,
// so a text node with several flags always nests identically.
var markOrder = []Format{
	FormatCode,
	FormatBold,
	FormatItalic,
	FormatStrikethrough,
	FormatUnderline,
	FormatSubscript,
	FormatSuperscript,
	FormatHighlight,
}

func (f Format) Has(flag Format) bool {
	return f&flag != 0
}

// Marks returns the flags set in f, innermost first.
func (f Format) Marks() []Format {
	var marks []Format
	for _, m := range markOrder {
		if f.Has(m) {
			marks = append(marks, m)
		}
	}
	return marks
}

func (f Format) String() string {
	switch f {
	case FormatBold:
		return "bold"
	case FormatItalic:
		return "italic"
	case FormatStrikethrough:
		return "strikethrough"
	case FormatUnderline:
		return "underline"
	case FormatCode:
		return "code"
	case FormatSubscript:
		return "subscript"
	case FormatSuperscript:
		return "superscript"
	case FormatHighlight:
		return "highlight"
	}
	return "format"
}
