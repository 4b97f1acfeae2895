package bundle

import (
	"fmt"

	"github.com/sokinpui/dogs/internal/delta"
)

// Action is one parsed file intent. It is a closed set: WriteAction,
// DeltaAction and DeleteAction.
type Action interface {
	FilePath() string
	action()
}

// WriteAction replaces (or creates) a file with Content.
type WriteAction struct {
	Path    string
	Content []byte
	Binary  bool
}

// DeltaAction patches a file from the reference snapshot.
type DeltaAction struct {
	Path     string
	Commands []delta.Command
}

// DeleteAction removes a file.
type DeleteAction struct {
	Path string
}

func (a WriteAction) FilePath() string  { return a.Path }
func (a DeltaAction) FilePath() string  { return a.Path }
func (a DeleteAction) FilePath() string { return a.Path }

func (WriteAction) action()  {}
func (DeltaAction) action()  {}
func (DeleteAction) action() {}

// Describe returns a short human readable label for an action.
func Describe(a Action) string {
	switch a := a.(type) {
	case WriteAction:
		if a.Binary {
			return fmt.Sprintf("write %s (%d bytes, binary)", a.Path, len(a.Content))
		}
		return fmt.Sprintf("write %s (%d bytes)", a.Path, len(a.Content))
	case DeltaAction:
		return fmt.Sprintf("patch %s (%d command(s))", a.Path, len(a.Commands))
	case DeleteAction:
		return fmt.Sprintf("delete %s", a.Path)
	default:
		return fmt.Sprintf("unknown action for %s", a.FilePath())
	}
}

// Severity of a parse issue.
type Severity int

const (
	Warning Severity = iota
	Error
)

// Issue is a recoverable problem found while parsing. Error issues mean the
// file named by Path produced no action.
type Issue struct {
	Severity Severity
	Line     int // 1-based; 0 when not tied to a line
	Path     string
	Message  string
}

func (i Issue) String() string {
	loc := ""
	if i.Line > 0 {
		loc = fmt.Sprintf("line %d: ", i.Line)
	}
	if i.Path != "" {
		return fmt.Sprintf("%s%s: %s", loc, i.Path, i.Message)
	}
	return loc + i.Message
}
