// Command render renders a stored document (or markdown) to one output format.
// With -golden it compares the output against a file and prints a diff.
//
//	render -format markdown doc.json
//	render -from-markdown -format html post.md
//	render -golden testdata/doc.html doc.json
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"agency-site-be/pkg/lexical"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	format       string
	fromMarkdown bool
	golden       string
	update       bool
	highlight    bool
	input        string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.format, "format", "html", "html, markdown, text or tree")
	fs.BoolVar(&o.fromMarkdown, "from-markdown", false, "treat the input as markdown")
	fs.StringVar(&o.golden, "golden", "", "compare the output with this file")
	fs.BoolVar(&o.update, "update", false, "rewrite the -golden file instead of comparing")
	fs.BoolVar(&o.highlight, "highlight", false, "syntax-highlight code blocks in html")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
		o.input = "-"
	case 1:
		o.input = fs.Arg(0)
	default:
		return nil, errors.New("at most one input file")
	}
	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	src, err := readInput(o.input, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var doc *lexical.Document
	if o.fromMarkdown {
		doc, _ = lexical.FromMarkdown(src)
	} else {
		doc = lexical.Decode(src)
	}

	out, res, err := render(doc, o)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	useColor := isTerminal(stderr)
	warn := color.New(color.FgYellow)
	warn.DisableColor()
	if useColor {
		warn.EnableColor()
	}
	for _, w := range res.Warnings {
		warn.Fprintf(stderr, "warning: %s: %s\n", w.Type, w.Message)
	}

	if o.golden == "" {
		fmt.Fprint(stdout, out)
		return 0
	}
	if o.update {
		if err := os.WriteFile(o.golden, []byte(out), 0o644); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	want, err := os.ReadFile(o.golden)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if string(want) == out {
		return 0
	}
	fmt.Fprint(stdout, diff(string(want), out, isTerminal(stdout)))
	return 1
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func render(doc *lexical.Document, o *options) (string, lexical.Result, error) {
	r := lexical.NewRenderer()
	switch o.format {
	case "html":
		t := lexical.NewHTMLTarget(lexical.WithHighlighting(o.highlight))
		res := r.Render(doc, t)
		return t.String(), res, nil
	case "markdown":
		t := lexical.NewMarkdownTarget()
		res := r.Render(doc, t)
		return t.String(), res, nil
	case "text":
		t := lexical.NewPlainTextTarget()
		res := r.Render(doc, t)
		return t.String(), res, nil
	case "tree":
		t := lexical.NewTreeTarget()
		res := r.Render(doc, t)
		b, err := json.MarshalIndent(t.Elements(), "", "  ")
		return string(b) + "\n", res, err
	}
	return "", lexical.Result{}, fmt.Errorf("unknown format %q", o.format)
}

// diff renders a line diff; removed lines red, added lines green.
func diff(want, got string, useColor bool) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	if useColor {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}

	var out string
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			out += del.Sprint(prefixLines("-", d.Text))
		case diffmatchpatch.DiffInsert:
			out += ins.Sprint(prefixLines("+", d.Text))
		default:
			out += prefixLines(" ", d.Text)
		}
	}
	return out
}

func prefixLines(prefix, text string) string {
	var out string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out += prefix + text[start:i+1]
			start = i + 1
		}
	}
	if start < len(text) {
		out += prefix + text[start:] + "\n"
	}
	return out
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
