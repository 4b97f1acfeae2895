package bundle

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sokinpui/dogs/internal/delta"
)

// Options control how a bundle is parsed.
type Options struct {
	// Patch enables recognition of patch commands. Without it only
	// DELETE_FILE() is honoured and other command lines are content.
	Patch bool
}

// Result is the outcome of parsing a bundle. Parsing never fails as a whole;
// problems are reported as issues.
type Result struct {
	Actions []Action
	Issues  []Issue
}

// Failed returns the paths of blocks that produced no action.
func (r Result) Failed() []string {
	var paths []string
	for _, issue := range r.Issues {
		if issue.Severity == Error && issue.Path != "" {
			paths = append(paths, issue.Path)
		}
	}
	return paths
}

// Parse splits text into lines and parses it.
func Parse(text string, opts Options) Result {
	return ParseLines(delta.SplitLines(text), opts)
}

// ParseLines runs the block state machine over lines. Text outside blocks is
// ignored. A block that is never closed, or is interrupted by another marker,
// is finalized with the content seen so far.
func ParseLines(lines []string, opts Options) Result {
	p := &parser{opts: opts}
	for i, line := range lines {
		p.line(i+1, line)
	}
	if p.cur != nil {
		p.warn(len(lines), p.cur.path, "unterminated block at end of input; keeping content seen so far")
		p.finish()
	}
	return p.res
}

type parser struct {
	opts Options
	cur  *block
	res  Result
}

// block accumulates one file between its markers.
type block struct {
	path   string
	binary bool
	line   int

	// lead is content before the first command; pending is content after
	// the most recent one.
	lead    []string
	cmds    []delta.Command
	pending []string
}

func (p *parser) line(n int, s string) {
	if m, ok := ScanMarker(s); ok {
		p.marker(n, m)
		return
	}
	if p.cur == nil {
		return
	}
	if text, ok := delta.CommandText(s); ok {
		cmd, valid := delta.Parse(text)
		switch {
		case valid && (p.opts.Patch || cmd.Op == delta.DeleteFile):
			p.command(n, cmd)
			return
		case !valid && p.opts.Patch:
			p.warn(n, p.cur.path, fmt.Sprintf("unrecognized patch command %q kept as content", text))
		}
	}
	if len(p.cur.cmds) == 0 {
		p.cur.lead = append(p.cur.lead, s)
	} else {
		p.cur.pending = append(p.cur.pending, s)
	}
}

func (p *parser) marker(n int, m Marker) {
	switch {
	case m.Kind == StartMarker:
		if p.cur != nil {
			p.warn(n, p.cur.path, fmt.Sprintf("block not closed before start of %q; closing it", m.Path))
			p.finish()
		}
		p.cur = &block{path: m.Path, binary: m.Binary, line: n}
	case p.cur == nil:
		p.warn(n, m.Path, "end marker outside of any block ignored")
	case m.Path == p.cur.path:
		if m.Binary != p.cur.binary {
			p.warn(n, m.Path, "end marker content hint differs from start marker")
		}
		p.finish()
	default:
		p.warn(n, p.cur.path, fmt.Sprintf("mismatched end marker for %q; closing current block", m.Path))
		p.finish()
	}
}

func (p *parser) command(n int, cmd delta.Command) {
	b := p.cur
	p.bindPending(n, b)
	b.cmds = append(b.cmds, cmd)
}

// bindPending attaches the content collected since the last command to it.
func (p *parser) bindPending(n int, b *block) {
	if len(b.cmds) == 0 {
		return
	}
	last := &b.cmds[len(b.cmds)-1]
	content := Finalize(b.pending)
	b.pending = nil
	if last.TakesContent() {
		last.Content = content
		return
	}
	if len(content) > 0 {
		p.warn(n, b.path, fmt.Sprintf("content after %s ignored", last))
	}
}

func (p *parser) finish() {
	b := p.cur
	p.cur = nil
	p.bindPending(b.line, b)

	lead := Finalize(b.lead)

	if hasDeleteFile(b.cmds) {
		if len(b.cmds) > 1 || len(lead) > 0 {
			p.warn(b.line, b.path, "file marked for deletion; other content and commands ignored")
		}
		p.emit(DeleteAction{Path: b.path})
		return
	}

	if len(b.cmds) > 0 {
		if len(lead) > 0 {
			p.warn(b.line, b.path, "content before the first patch command ignored")
		}
		p.emit(DeltaAction{Path: b.path, Commands: b.cmds})
		return
	}

	if b.binary {
		data, err := decodeBase64(lead)
		if err != nil {
			p.fail(b.line, b.path, fmt.Sprintf("invalid base64 content: %v", err))
			return
		}
		p.emit(WriteAction{Path: b.path, Content: data, Binary: true})
		return
	}
	p.emit(WriteAction{Path: b.path, Content: []byte(delta.JoinLines(lead))})
}

func (p *parser) emit(a Action) {
	p.res.Actions = append(p.res.Actions, a)
}

func (p *parser) warn(n int, path, msg string) {
	p.res.Issues = append(p.res.Issues, Issue{Severity: Warning, Line: n, Path: path, Message: msg})
}

func (p *parser) fail(n int, path, msg string) {
	p.res.Issues = append(p.res.Issues, Issue{Severity: Error, Line: n, Path: path, Message: msg})
}

func hasDeleteFile(cmds []delta.Command) bool {
	for _, c := range cmds {
		if c.Op == delta.DeleteFile {
			return true
		}
	}
	return false
}

// decodeBase64 decodes a blob that may be split across lines.
func decodeBase64(lines []string) ([]byte, error) {
	blob := strings.Join(strings.Fields(strings.Join(lines, "\n")), "")
	data, err := base64.StdEncoding.DecodeString(blob)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(blob); rawErr == nil {
		return raw, nil
	}
	return nil, err
}
