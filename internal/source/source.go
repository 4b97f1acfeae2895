package source

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
)

// StdinName selects standard input explicitly.
const StdinName = "-"

// SourceProvider determines and retrieves the reply bundle text.
type SourceProvider struct {
	path  string
	stdin *os.File

	// readClipboard is swapped in tests.
	readClipboard func() (string, error)
}

// New creates a provider for path. An empty path means stdin when it is
// piped and the clipboard otherwise.
func New(path string) *SourceProvider {
	return &SourceProvider{path: path, stdin: os.Stdin, readClipboard: clipboard.ReadAll}
}

type sourceKind int

const (
	fromFile sourceKind = iota
	fromStdin
	fromClipboard
)

func (sp *SourceProvider) kind() sourceKind {
	switch {
	case sp.path != "" && sp.path != StdinName:
		return fromFile
	case sp.path == StdinName || IsPiped(sp.stdin):
		return fromStdin
	default:
		return fromClipboard
	}
}

// Describe names where the content will come from.
func (sp *SourceProvider) Describe() string {
	switch sp.kind() {
	case fromStdin:
		return "stdin"
	case fromClipboard:
		return "clipboard"
	default:
		return sp.path
	}
}

// GetContent reads the whole reply.
func (sp *SourceProvider) GetContent() (string, error) {
	switch sp.kind() {
	case fromStdin:
		content, err := io.ReadAll(sp.stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	case fromClipboard:
		content, err := sp.readClipboard()
		if err != nil {
			return "", fmt.Errorf("failed to read from clipboard: %w", err)
		}
		return content, nil
	default:
		content, err := os.ReadFile(sp.path)
		if err != nil {
			return "", fmt.Errorf("failed to read reply bundle: %w", err)
		}
		return string(content), nil
	}
}

// IsPiped reports whether f is not an interactive terminal.
func IsPiped(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
