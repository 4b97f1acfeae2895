package delta

import (
	"fmt"
	"strings"
)

// Outcome is the result of applying a command list to one file.
type Outcome struct {
	Lines []string
	// Delete is set when a DELETE_FILE command was reached; Lines is nil then.
	Delete bool
}

// Skipped describes a command that could not be applied.
type Skipped struct {
	Index   int // position in the command list
	Command Command
	Reason  string
}

func (s Skipped) String() string {
	return fmt.Sprintf("command %d %s skipped: %s", s.Index+1, s.Command, s.Reason)
}

// state is the fold accumulator: the live lines and the running shift between
// original line numbers and live indices.
type state struct {
	lines  []string
	offset int
}

// Apply folds cmds over a copy of original.
//
// Commands must be ordered by ascending original line number. Ordering is not
// checked: out-of-order commands produce wrong output. A command whose range
// falls outside the live lines is skipped and reported, and the remaining
// commands still apply.
func Apply(original []string, cmds []Command) (Outcome, []Skipped) {
	st := state{lines: append([]string(nil), original...)}
	var skipped []Skipped

	for i, cmd := range cmds {
		if cmd.Op == DeleteFile {
			return Outcome{Delete: true}, skipped
		}
		next, err := st.step(cmd)
		if err != nil {
			skipped = append(skipped, Skipped{Index: i, Command: cmd, Reason: err.Error()})
			continue
		}
		st = next
	}
	return Outcome{Lines: st.lines}, skipped
}

func (st state) step(cmd Command) (state, error) {
	switch cmd.Op {
	case Replace:
		i, j, err := st.span(cmd.Start, cmd.End)
		if err != nil {
			return st, err
		}
		return state{
			lines:  splice(st.lines, i, j+1, cmd.Content),
			offset: st.offset + len(cmd.Content) - (j - i + 1),
		}, nil
	case Insert:
		if cmd.After < 0 || cmd.After > len(st.lines)-st.offset {
			return st, fmt.Errorf("insert after line %d out of range (file has %d lines)", cmd.After, len(st.lines))
		}
		at := cmd.After + st.offset
		if at < 0 {
			return st, fmt.Errorf("insert after line %d falls inside a replaced range", cmd.After)
		}
		return state{
			lines:  splice(st.lines, at, at, cmd.Content),
			offset: st.offset + len(cmd.Content),
		}, nil
	case DeleteLines:
		i, j, err := st.span(cmd.Start, cmd.End)
		if err != nil {
			return st, err
		}
		return state{
			lines:  splice(st.lines, i, j+1, nil),
			offset: st.offset - (cmd.End - cmd.Start + 1),
		}, nil
	default:
		return st, fmt.Errorf("unsupported operation %s", cmd.Op)
	}
}

// span maps an original 1-based inclusive range onto live 0-based indices.
// Bounds are checked in original numbering first so that huge arguments
// cannot overflow when the offset is added.
func (st state) span(start, end int) (int, int, error) {
	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("invalid range %d-%d", start, end)
	}
	if end > len(st.lines)-st.offset || start < 1-st.offset {
		return 0, 0, fmt.Errorf("range %d-%d out of bounds (file has %d lines)", start, end, len(st.lines))
	}
	return start - 1 + st.offset, end - 1 + st.offset, nil
}

// splice returns a new slice with lines[from:to] replaced by repl.
func splice(lines []string, from, to int, repl []string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(repl))
	out = append(out, lines[:from]...)
	out = append(out, repl...)
	return append(out, lines[to:]...)
}

// SplitLines splits file content into lines. Handles both LF and CRLF.
// A trailing newline does not produce an extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// JoinLines joins lines back into file content with a trailing newline.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
