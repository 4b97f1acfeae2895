package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	PathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	PromptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	FaintStyle   = lipgloss.NewStyle().Faint(true)

	DiffAddStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	DiffDelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	DiffHunkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var out io.Writer = os.Stderr

// SetOutput redirects all messages. Pass io.Discard to silence them.
func SetOutput(w io.Writer) {
	out = w
}

// Output returns the current message writer.
func Output() io.Writer {
	return out
}

func printStyled(style lipgloss.Style, format string, a ...any) {
	fmt.Fprintln(out, style.Render(fmt.Sprintf(format, a...)))
}

func Header(format string, a ...any) {
	printStyled(HeaderStyle, format, a...)
}

func Info(format string, a ...any) {
	printStyled(InfoStyle, format, a...)
}

func Success(format string, a ...any) {
	printStyled(SuccessStyle, format, a...)
}

func Warning(format string, a ...any) {
	printStyled(WarningStyle, format, a...)
}

func Error(format string, a ...any) {
	printStyled(ErrorStyle, format, a...)
}

func Path(format string, a ...any) {
	printStyled(PathStyle, "  "+format, a...)
}

func Prompt(format string, a ...any) string {
	return PromptStyle.Render(fmt.Sprintf(format, a...))
}

// Diff prints a unified diff with added and removed lines coloured.
func Diff(unified string) {
	for _, line := range strings.Split(strings.TrimSuffix(unified, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprintln(out, HeaderStyle.Render(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprintln(out, DiffHunkStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(out, DiffAddStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(out, DiffDelStyle.Render(line))
		default:
			fmt.Fprintln(out, line)
		}
	}
}
