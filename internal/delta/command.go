package delta

import (
	"fmt"
	"strconv"
	"strings"
)

// Op identifies the kind of a patch command.
type Op int

const (
	Replace Op = iota
	Insert
	DeleteLines
	DeleteFile
)

func (o Op) String() string {
	switch o {
	case Replace:
		return "REPLACE_LINES"
	case Insert:
		return "INSERT_AFTER_LINE"
	case DeleteLines:
		return "DELETE_LINES"
	case DeleteFile:
		return "DELETE_FILE"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Command is a single patch directive. Line numbers are 1-based and always
// refer to the original, unpatched file.
type Command struct {
	Op    Op
	Start int // Replace, DeleteLines
	End   int // Replace, DeleteLines (inclusive)
	After int // Insert; 0 inserts before the first line
	// Content holds the replacement or inserted lines.
	Content []string
}

// TakesContent reports whether lines following the command belong to it.
func (c Command) TakesContent() bool {
	return c.Op == Replace || c.Op == Insert
}

func (c Command) String() string {
	switch c.Op {
	case Replace, DeleteLines:
		return fmt.Sprintf("%s(%d, %d)", c.Op, c.Start, c.End)
	case Insert:
		return fmt.Sprintf("%s(%d)", c.Op, c.After)
	default:
		return fmt.Sprintf("%s()", c.Op)
	}
}

const (
	commandDelim = "@@"
	commandTag   = "PAWS_CMD"
)

// CommandText extracts the inner text of a `@@ PAWS_CMD <text> @@` line.
// The second result is false when the line does not have that shape.
func CommandText(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, commandDelim) || !strings.HasSuffix(s, commandDelim) {
		return "", false
	}
	if len(s) < 2*len(commandDelim) {
		return "", false
	}
	inner := strings.TrimSpace(s[len(commandDelim) : len(s)-len(commandDelim)])
	if len(inner) < len(commandTag) || !strings.EqualFold(inner[:len(commandTag)], commandTag) {
		return "", false
	}
	rest := inner[len(commandTag):]
	// The tag must be followed by whitespace, e.g. "PAWS_CMDX" is not a tag.
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	text := strings.TrimSpace(rest)
	if text == "" {
		return "", false
	}
	return text, true
}

// Parse parses the inner text of a command line. Unknown or malformed
// commands return ok == false; callers treat the line as ordinary content.
func Parse(text string) (cmd Command, ok bool) {
	name, args, ok := splitCall(text)
	if !ok {
		return Command{}, false
	}

	switch strings.ToUpper(name) {
	case "REPLACE_LINES", "DELETE_LINES":
		if len(args) != 2 {
			return Command{}, false
		}
		op := Replace
		if strings.EqualFold(name, "DELETE_LINES") {
			op = DeleteLines
		}
		return Command{Op: op, Start: args[0], End: args[1]}, true
	case "INSERT_AFTER_LINE":
		if len(args) != 1 {
			return Command{}, false
		}
		return Command{Op: Insert, After: args[0]}, true
	case "DELETE_FILE":
		if len(args) != 0 {
			return Command{}, false
		}
		return Command{Op: DeleteFile}, true
	}
	return Command{}, false
}

// ParseLine combines CommandText and Parse.
func ParseLine(line string) (Command, bool) {
	text, ok := CommandText(line)
	if !ok {
		return Command{}, false
	}
	return Parse(text)
}

// splitCall lexes `NAME ( [int {, int}] )` with free whitespace.
func splitCall(text string) (string, []int, bool) {
	s := strings.TrimSpace(text)
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(s[:open])
	if !isIdent(name) {
		return "", nil, false
	}

	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner == "" {
		return name, nil, true
	}

	parts := strings.Split(inner, ",")
	args := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || !isDigits(p) {
			return "", nil, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", nil, false
		}
		args = append(args, n)
	}
	return name, args, true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
