package lexical

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderHTML(t *testing.T, doc string, opts ...Option) (string, Result) {
	t.Helper()
	target := NewHTMLTarget(WithHighlighting(false))
	res := NewRenderer(opts...).Render(DecodeString(doc), target)
	return target.String(), res
}

func TestRenderTotality(t *testing.T) {
	inputs := []struct {
		name string
		data string
	}{
		{"empty input", ""},
		{"undefined literal", "undefined"},
		{"null", "null"},
		{"empty object", "{}"},
		{"root without children", `{"root":{}}`},
		{"children not an array", `{"root":{"children":"nope"}}`},
		{"top level array", `[1,2,3]`},
		{"garbage children", `{"root":{"children":[null,1,"x",{"type":5},{"children":{}}]}}`},
		{"text without fields", `{"root":{"children":[{"type":"paragraph","children":[{"type":"text"}]}]}}`},
		{"upload without value", `{"root":{"children":[{"type":"upload"}]}}`},
		{"list with garbage items", `{"root":{"children":[{"type":"list","listType":7,"children":[{"type":"listitem","value":"x"},{"type":"text","text":"loose"}]}]}}`},
		{"truncated json", `{"root":{"children":[{"type":"paragraph"`},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			for _, target := range []Target{NewHTMLTarget(), NewMarkdownTarget(), NewPlainTextTarget(), NewTreeTarget()} {
				assert.NotPanics(t, func() {
					NewRenderer().Render(DecodeString(tt.data), target)
				})
			}
		})
	}
}

func TestRenderAbsentDocumentIsMarked(t *testing.T) {
	for _, data := range []string{"", "{}", `{"root":{}}`, "not json"} {
		out, res := renderHTML(t, data)
		assert.Equal(t, EmptyHTML, out, "input %q", data)
		assert.True(t, res.Empty)
	}

	var nilDoc *Document
	target := NewTreeTarget()
	res := NewRenderer().Render(nilDoc, target)
	assert.True(t, res.Empty)
	require.Len(t, target.Elements(), 1)
	assert.Equal(t, "empty", target.Elements()[0].Kind)
}

func TestRenderEmptyRootChildren(t *testing.T) {
	out, res := renderHTML(t, `{"root":{"children":[]}}`)
	assert.Equal(t, "", out)
	assert.False(t, res.Empty)
}

func TestRenderPreservesOrder(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 50} {
		t.Run(fmt.Sprintf("%d blocks", n), func(t *testing.T) {
			var children []string
			for i := 0; i < n; i++ {
				children = append(children, fmt.Sprintf(`{"type":"paragraph","children":[{"type":"text","text":"p%d"}]}`, i))
			}
			doc := `{"root":{"children":[` + strings.Join(children, ",") + `]}}`

			target := NewTreeTarget()
			NewRenderer().Render(DecodeString(doc), target)

			elements := target.Elements()
			require.Len(t, elements, n)
			for i, e := range elements {
				assert.Equal(t, "paragraph", e.Kind)
				assert.Equal(t, fmt.Sprintf("p%d", i), e.Children[0].Text)
			}
		})
	}
}

func TestRenderBoldParagraph(t *testing.T) {
	out, res := renderHTML(t, `{"root":{"children":[{"type":"paragraph","children":[{"type":"text","text":"Hello","format":1}]}]}}`)
	assert.Equal(t, "<p><strong>Hello</strong></p>", out)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 2, res.Nodes)
}

func TestRenderFormatCombinations(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{"bold italic underline", FormatBold | FormatItalic | FormatUnderline, "<u><em><strong>x</strong></em></u>"},
		{"code is innermost", FormatCode | FormatBold, "<strong><code>x</code></strong>"},
		{"strikethrough inside underline", FormatStrikethrough | FormatUnderline, "<u><s>x</s></u>"},
		{"every flag", 255, "<mark><sup><sub><u><s><em><strong><code>x</code></strong></em></s></u></sub></sup></mark>"},
		{"no flags", 0, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fmt.Sprintf(`{"root":{"children":[{"type":"paragraph","children":[{"type":"text","text":"x","format":%d}]}]}}`, tt.format)
			first, _ := renderHTML(t, doc)
			second, _ := renderHTML(t, doc)
			assert.Equal(t, "<p>"+tt.want+"</p>", first)
			assert.Equal(t, first, second)
		})
	}
}

func TestRenderHeadingLevels(t *testing.T) {
	tests := []struct {
		tag      string
		want     string
		fallback bool
	}{
		{"h1", `<h1 class="text-4xl font-bold">T</h1>`, false},
		{"h3", `<h3 class="text-2xl font-semibold">T</h3>`, false},
		{"h6", `<h6 class="text-base font-medium">T</h6>`, false},
		{"h7", `<h2 class="text-3xl font-semibold">T</h2>`, true},
		{"h0", `<h2 class="text-3xl font-semibold">T</h2>`, true},
		{"", `<h2 class="text-3xl font-semibold">T</h2>`, true},
	}

	for _, tt := range tests {
		t.Run("tag "+tt.tag, func(t *testing.T) {
			doc := fmt.Sprintf(`{"root":{"children":[{"type":"heading","tag":%q,"children":[{"type":"text","text":"T"}]}]}}`, tt.tag)
			out, res := renderHTML(t, doc)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, tt.fallback, res.HasWarning(WarningHeadingFallback))
		})
	}
}

func TestRenderLinkSafety(t *testing.T) {
	tests := []struct {
		name string
		node string
		want string
	}{
		{
			name: "autolink new tab",
			node: `{"type":"autolink","url":"https://acme.io","fields":{"newTab":true},"children":[{"type":"text","text":"acme"}]}`,
			want: `<a href="https://acme.io" target="_blank" rel="noopener noreferrer">acme</a>`,
		},
		{
			name: "autolink flag false",
			node: `{"type":"autolink","url":"https://acme.io","fields":{"newTab":false},"children":[{"type":"text","text":"acme"}]}`,
			want: `<a href="https://acme.io">acme</a>`,
		},
		{
			name: "link flag absent drops stored noreferrer",
			node: `{"type":"link","url":"/about","rel":"noreferrer","children":[{"type":"text","text":"about"}]}`,
			want: `<a href="/about">about</a>`,
		},
		{
			name: "target blank keeps extra rel tokens",
			node: `{"type":"link","url":"https://x.io","rel":"nofollow","target":"_blank","children":[{"type":"text","text":"x"}]}`,
			want: `<a href="https://x.io" target="_blank" rel="nofollow noopener noreferrer">x</a>`,
		},
		{
			name: "cms field url",
			node: `{"type":"link","fields":{"url":"https://cms.io","newTab":true,"linkType":"custom"},"children":[{"type":"text","text":"c"}]}`,
			want: `<a href="https://cms.io" target="_blank" rel="noopener noreferrer">c</a>`,
		},
		{
			name: "internal cms link",
			node: `{"type":"link","fields":{"linkType":"internal","doc":{"relationTo":"posts","value":{"slug":"launch"}}},"children":[{"type":"text","text":"l"}]}`,
			want: `<a href="/posts/launch">l</a>`,
		},
		{
			name: "javascript url dropped",
			node: `{"type":"link","url":"javascript:alert(1)","children":[{"type":"text","text":"j"}]}`,
			want: `<a>j</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := renderHTML(t, `{"root":{"children":[{"type":"paragraph","children":[`+tt.node+`]}]}}`)
			assert.Equal(t, "<p>"+tt.want+"</p>", out)
		})
	}
}

func TestRenderLists(t *testing.T) {
	t.Run("numbered list keeps order", func(t *testing.T) {
		out, _ := renderHTML(t, `{"root":{"children":[{"type":"list","listType":"number","children":[
			{"type":"listitem","children":[{"type":"text","text":"first"}]},
			{"type":"listitem","children":[{"type":"text","text":"second"}]}]}]}}`)
		assert.Equal(t, `<ol><li value="1">first</li><li value="2">second</li></ol>`, out)
	})

	t.Run("start index and explicit values", func(t *testing.T) {
		out, _ := renderHTML(t, `{"root":{"children":[{"type":"list","listType":"number","start":3,"children":[
			{"type":"listitem","children":[{"type":"text","text":"a"}]},
			{"type":"listitem","value":9,"children":[{"type":"text","text":"b"}]},
			{"type":"listitem","children":[{"type":"text","text":"c"}]}]}]}}`)
		assert.Equal(t, `<ol start="3"><li value="3">a</li><li value="9">b</li><li value="10">c</li></ol>`, out)
	})

	t.Run("empty list renders empty container", func(t *testing.T) {
		out, res := renderHTML(t, `{"root":{"children":[{"type":"list","listType":"bullet","children":[]}]}}`)
		assert.Equal(t, "<ul></ul>", out)
		assert.False(t, res.Empty)
	})

	t.Run("check list", func(t *testing.T) {
		out, _ := renderHTML(t, `{"root":{"children":[{"type":"list","listType":"check","children":[
			{"type":"listitem","checked":true,"children":[{"type":"text","text":"done"}]},
			{"type":"listitem","children":[{"type":"text","text":"todo"}]}]}]}}`)
		assert.Equal(t, `<ul class="checklist"><li role="checkbox" aria-checked="true">done</li><li role="checkbox" aria-checked="false">todo</li></ul>`, out)
	})

	t.Run("unknown kind falls back to bullet", func(t *testing.T) {
		out, res := renderHTML(t, `{"root":{"children":[{"type":"list","listType":"roman","children":[
			{"type":"listitem","children":[{"type":"text","text":"i"}]}]}]}}`)
		assert.Equal(t, `<ul><li>i</li></ul>`, out)
		assert.True(t, res.HasWarning(WarningListFallback))
	})

	t.Run("nested list item does not consume a number", func(t *testing.T) {
		out, _ := renderHTML(t, `{"root":{"children":[{"type":"list","listType":"number","children":[
			{"type":"listitem","children":[{"type":"text","text":"a"}]},
			{"type":"listitem","children":[{"type":"list","listType":"bullet","children":[{"type":"listitem","children":[{"type":"text","text":"a.1"}]}]}]},
			{"type":"listitem","children":[{"type":"text","text":"b"}]}]}]}}`)
		assert.Equal(t, `<ol><li value="1">a</li><li class="nested-list-item"><ul><li>a.1</li></ul></li><li value="2">b</li></ol>`, out)
	})
}

func TestRenderUploads(t *testing.T) {
	t.Run("missing url contributes nothing", func(t *testing.T) {
		out, res := renderHTML(t, `{"root":{"children":[
			{"type":"paragraph","children":[{"type":"text","text":"A"}]},
			{"type":"upload","value":{"id":"m1","alt":"ghost"}},
			{"type":"paragraph","children":[{"type":"text","text":"B"}]}]}}`)
		assert.Equal(t, "<p>A</p><p>B</p>", out)
		assert.True(t, res.HasWarning(WarningUnresolvedAsset))
	})

	t.Run("populated asset renders a figure", func(t *testing.T) {
		out, _ := renderHTML(t, `{"root":{"children":[{"type":"upload","value":{"id":"m1","url":"/media/team.jpg","alt":"The team","width":800,"height":600}}]}}`)
		assert.Equal(t, `<figure><img src="/media/team.jpg" alt="The team" width="800" height="600" loading="lazy"><figcaption>The team</figcaption></figure>`, out)
	})

	t.Run("bare id resolved through the resolver", func(t *testing.T) {
		assets := AssetMap{"m2": {URL: "https://cdn.acme.io/m2.png"}}
		out, res := renderHTML(t, `{"root":{"children":[{"type":"upload","value":"m2"}]}}`, WithAssetResolver(assets))
		assert.Equal(t, `<figure><img src="https://cdn.acme.io/m2.png" alt="" loading="lazy"></figure>`, out)
		assert.Empty(t, res.Warnings)
	})

	t.Run("resolver miss is omitted", func(t *testing.T) {
		out, _ := renderHTML(t, `{"root":{"children":[{"type":"upload","value":"m3"}]}}`, WithAssetResolver(AssetMap{}))
		assert.Equal(t, "", out)
	})
}

func TestRenderUnknownNodes(t *testing.T) {
	out, res := renderHTML(t, `{"root":{"children":[
		{"type":"banner","children":[{"type":"paragraph","children":[{"type":"text","text":"hi"},{"type":"mention","children":[{"type":"text","text":"@ana"}]}]}]},
		{"type":"youtube","videoID":"abc"},
		{"type":"callout","children":[]}]}}`)
	assert.Equal(t, `<div data-lexical-type="banner"><p>hi<span data-lexical-type="mention">@ana</span></p></div><div data-lexical-type="callout"></div>`, out)
	assert.True(t, res.HasWarning(WarningUnknownNode))
}

func TestRenderLeafNodes(t *testing.T) {
	out, _ := renderHTML(t, `{"root":{"children":[
		{"type":"paragraph","children":[{"type":"text","text":"a"},{"type":"linebreak"},{"type":"text","text":"b <c>"}]},
		{"type":"horizontalrule"},
		{"type":"quote","children":[{"type":"text","text":"q","style":"color: red; position: absolute"}]}]}}`)
	assert.Equal(t, `<p>a<br>b &lt;c&gt;</p><hr><blockquote><span style="color: red">q</span></blockquote>`, out)
}

func TestRenderCodeBlockIsVerbatim(t *testing.T) {
	out, _ := renderHTML(t, `{"root":{"children":[{"type":"code","language":"","children":[
		{"type":"code-highlight","text":"if a < b {","format":1},
		{"type":"linebreak"},
		{"type":"tab"},
		{"type":"code-highlight","text":"run()"}]}]}}`)
	assert.Equal(t, "<pre><code>if a &lt; b {\n\trun()</code></pre>", out)
}

func TestRenderCodeBlockHighlighted(t *testing.T) {
	target := NewHTMLTarget()
	NewRenderer().Render(DecodeString(`{"root":{"children":[{"type":"code","language":"go","children":[{"type":"code-highlight","text":"package main"}]}]}}`), target)
	assert.Contains(t, target.String(), "chroma")
	assert.Contains(t, target.String(), "package")
}

func TestRenderTable(t *testing.T) {
	out, _ := renderHTML(t, `{"root":{"children":[{"type":"table","children":[
		{"type":"tablerow","children":[{"type":"tablecell","headerState":1,"children":[{"type":"paragraph","children":[{"type":"text","text":"H"}]}]}]},
		{"type":"tablerow","children":[{"type":"tablecell","colSpan":2,"children":[{"type":"paragraph","children":[{"type":"text","text":"C"}]}]}]}]}]}}`)
	assert.Equal(t, `<table><tr><th><p>H</p></th></tr><tr><td colspan="2"><p>C</p></td></tr></table>`, out)
}

func nestedDocument(depth int) string {
	return `{"root":{"children":[` +
		strings.Repeat(`{"type":"quote","children":[`, depth) +
		`{"type":"text","text":"deep"}` +
		strings.Repeat(`]}`, depth) +
		`]}}`
}

func TestRenderDepthLimit(t *testing.T) {
	out, res := renderHTML(t, nestedDocument(10), WithMaxDepth(4))
	assert.Equal(t, strings.Repeat("<blockquote>", 4)+strings.Repeat("</blockquote>", 4), out)
	assert.True(t, res.HasWarning(WarningDepthLimit))

	assert.NotPanics(t, func() {
		_, res := renderHTML(t, nestedDocument(2000))
		assert.True(t, res.HasWarning(WarningDepthLimit))
	})
}

func TestRenderNodeBudget(t *testing.T) {
	var children []string
	for i := 0; i < 10; i++ {
		children = append(children, `{"type":"horizontalrule"}`)
	}
	out, res := renderHTML(t, `{"root":{"children":[`+strings.Join(children, ",")+`]}}`, WithMaxNodes(3))
	assert.Equal(t, "<hr><hr><hr>", out)
	assert.Equal(t, 3, res.Nodes)
	assert.True(t, res.HasWarning(WarningNodeBudget))
}

func TestRenderDoesNotMutateDocument(t *testing.T) {
	doc := DecodeString(`{"root":{"children":[{"type":"upload","value":"m1"}]}}`)
	r := NewRenderer(WithAssetResolver(AssetMap{"m1": {URL: "/m1.png"}}))

	r.Render(doc, NewHTMLTarget())
	up := doc.Root.Children[0].(*Upload)
	assert.Nil(t, up.Asset)
}

func TestRendererWithCopies(t *testing.T) {
	base := NewRenderer(WithMaxDepth(3))
	derived := base.With(WithMaxDepth(10))
	assert.Equal(t, 3, base.maxDepth)
	assert.Equal(t, 10, derived.maxDepth)
	assert.Equal(t, DefaultMaxNodes, derived.maxNodes)
}

func TestRenderConcurrent(t *testing.T) {
	const workers = 32
	doc := DecodeString(landingPage)
	want := RenderHTML([]byte(landingPage))
	wantTree := func() []*Element {
		tree := NewTreeTarget()
		NewRenderer().Render(doc, tree)
		return tree.Elements()
	}()

	r := NewRenderer()
	html := make([]string, workers)
	shared := make([]string, workers)
	trees := make([][]*Element, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			html[i] = RenderHTML([]byte(landingPage))

			target := NewHTMLTarget()
			r.Render(doc, target)
			shared[i] = target.String()

			tree := NewTreeTarget()
			r.Render(doc, tree)
			trees[i] = tree.Elements()
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		assert.Equal(t, want, html[i], "worker %d", i)
		assert.Equal(t, want, shared[i], "worker %d", i)
		assert.Equal(t, wantTree, trees[i], "worker %d", i)
	}
}
