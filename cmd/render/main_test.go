package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = `{"root":{"children":[{"type":"paragraph","children":[{"type":"text","text":"Hi","format":1}]}]}}`

func TestRunFormats(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-format", "html"}, "<p><strong>Hi</strong></p>"},
		{[]string{"-format", "markdown"}, "**Hi**"},
		{[]string{"-format", "text"}, "Hi"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(doc), &stdout, &stderr)
			require.Equal(t, 0, code, stderr.String())
			assert.Equal(t, tt.want, strings.TrimSpace(stdout.String()))
		})
	}
}

func TestRunUnknownFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-format", "pdf"}, strings.NewReader(doc), &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown format "pdf"`)
}

func TestRunFromMarkdown(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-from-markdown", "-format", "text"}, strings.NewReader("# Title\n\nBody"), &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Title")
	assert.Contains(t, stdout.String(), "Body")
}

func TestRunGolden(t *testing.T) {
	golden := filepath.Join(t.TempDir(), "doc.txt")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-format", "text", "-golden", golden, "-update"}, strings.NewReader(doc), &stdout, &stderr))

	got, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Equal(t, "Hi", string(got))

	stdout.Reset()
	assert.Equal(t, 0, run([]string{"-format", "text", "-golden", golden}, strings.NewReader(doc), &stdout, &stderr))
	assert.Empty(t, stdout.String())

	changed := strings.Replace(doc, `"Hi"`, `"Bye"`, 1)
	assert.Equal(t, 1, run([]string{"-format", "text", "-golden", golden}, strings.NewReader(changed), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "-Hi")
	assert.Contains(t, stdout.String(), "+Bye")
}
