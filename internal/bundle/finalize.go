package bundle

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var fenceParser = goldmark.DefaultParser()

// IsFence reports whether line is a bare markdown fence such as "```",
// "```go" or "~~~", with nothing else on the line.
func IsFence(line string) bool {
	s := strings.TrimSpace(line)
	if len(s) < 3 || (s[0] != '`' && s[0] != '~') {
		return false
	}

	source := []byte(s)
	doc := fenceParser.Parse(text.NewReader(source))
	block, ok := doc.FirstChild().(*ast.FencedCodeBlock)
	if !ok || block.NextSibling() != nil || block.Lines().Len() != 0 {
		return false
	}
	if block.Info == nil {
		return true
	}
	// A language tag is a single word; "```go run main.go" is prose.
	info := strings.TrimSpace(string(block.Info.Segment.Value(source)))
	return !strings.ContainsAny(info, " \t")
}

// Finalize strips incidental formatting from a content block: surrounding
// blank lines and a single wrapping fence line at either end. Fences and
// blank lines inside the content are kept.
func Finalize(lines []string) []string {
	out := trimBlank(lines)
	if len(out) > 0 && IsFence(out[0]) {
		out = out[1:]
	}
	if len(out) > 0 && IsFence(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	out = trimBlank(out)
	if len(out) == 0 {
		return nil
	}
	return append([]string(nil), out...)
}

func trimBlank(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
