package lexical

import (
	"testing"
)

func TestMarkdownTarget(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "blocks are separated by one blank line",
			doc: `{"root":{"children":[
				{"type":"heading","tag":"h1","children":[{"type":"text","text":"Title"}]},
				{"type":"paragraph","children":[{"type":"text","text":"Hello "},{"type":"text","text":"world","format":1}]},
				{"type":"list","listType":"number","children":[
					{"type":"listitem","children":[{"type":"text","text":"one"}]},
					{"type":"listitem","children":[{"type":"text","text":"two"}]}]},
				{"type":"code","language":"go","children":[{"type":"code-highlight","text":"fmt.Println()"}]}]}}`,
			want: "# Title\n\nHello **world**\n\n1. one\n2. two\n\n```go\nfmt.Println()\n```\n",
		},
		{
			name: "check list",
			doc: `{"root":{"children":[{"type":"list","listType":"check","children":[
				{"type":"listitem","checked":true,"children":[{"type":"text","text":"done"}]},
				{"type":"listitem","children":[{"type":"text","text":"todo"}]}]}]}}`,
			want: "- [x] done\n- [ ] todo\n",
		},
		{
			name: "nested list is indented",
			doc: `{"root":{"children":[{"type":"list","listType":"bullet","children":[
				{"type":"listitem","children":[{"type":"text","text":"a"}]},
				{"type":"listitem","children":[{"type":"list","listType":"bullet","children":[
					{"type":"listitem","children":[{"type":"text","text":"b"}]}]}]}]}]}}`,
			want: "- a\n  - b\n",
		},
		{
			name: "quote keeps line breaks quoted",
			doc: `{"root":{"children":[{"type":"quote","children":[
				{"type":"text","text":"first"},{"type":"linebreak"},{"type":"text","text":"second"}]}]}}`,
			want: "> first\n> second\n",
		},
		{
			name: "link and marks",
			doc: `{"root":{"children":[{"type":"paragraph","children":[
				{"type":"text","text":"See "},
				{"type":"link","url":"https://acme.io/docs","children":[{"type":"text","text":"docs","format":2}]},
				{"type":"text","text":" now","format":4}]}]}}`,
			want: "See [_docs_](https://acme.io/docs)~~ now~~\n",
		},
		{
			name: "table uses first row as header",
			doc: `{"root":{"children":[{"type":"table","children":[
				{"type":"tablerow","children":[
					{"type":"tablecell","headerState":1,"children":[{"type":"paragraph","children":[{"type":"text","text":"Plan"}]}]},
					{"type":"tablecell","headerState":1,"children":[{"type":"paragraph","children":[{"type":"text","text":"Price"}]}]}]},
				{"type":"tablerow","children":[
					{"type":"tablecell","children":[{"type":"paragraph","children":[{"type":"text","text":"Pro"}]}]}]}]}]}}`,
			want: "| Plan | Price |\n|---|---|\n| Pro |  |\n",
		},
		{
			name: "image and rule stand on their own",
			doc: `{"root":{"children":[
				{"type":"upload","value":{"url":"/media/a.png","alt":"A"}},
				{"type":"paragraph","children":[{"type":"text","text":"after"}]},
				{"type":"horizontalrule"}]}}`,
			want: "![A](/media/a.png)\n\nafter\n\n---\n",
		},
		{
			name: "parentheses in link targets are escaped",
			doc: `{"root":{"children":[{"type":"paragraph","children":[
				{"type":"link","url":"https://en.wikipedia.org/wiki/Go_(language)","children":[{"type":"text","text":"Go"}]}]}]}}`,
			want: "[Go](https://en.wikipedia.org/wiki/Go_\\(language\\))\n",
		},
		{
			name: "image alt and url are escaped",
			doc:  `{"root":{"children":[{"type":"upload","value":{"url":"/media/logo(1).png","alt":"Logo [dark]"}}]}}`,
			want: "![Logo \\[dark\\]](/media/logo\\(1\\).png)\n",
		},
		{
			name: "empty children",
			doc:  `{"root":{"children":[]}}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderMarkdown([]byte(tt.doc)); got != tt.want {
				t.Errorf("RenderMarkdown() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestParseContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"plain string passes through", "Just words", "Just words"},
		{"json that is not a document passes through", `{"title":"x"}`, `{"title":"x"}`},
		{"document becomes markdown", `{"root":{"children":[{"type":"paragraph","children":[{"type":"text","text":"hi","format":1}]}]}}`, "**hi**\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseContent(tt.content); got != tt.want {
				t.Errorf("ParseContent(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
