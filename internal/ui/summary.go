package ui

import (
	"fmt"
	"strings"

	"github.com/sokinpui/dogs/internal/model"
)

// RenderSummary formats a run summary.
func RenderSummary(summary model.Summary) string {
	var b strings.Builder

	if summary.Message != "" {
		b.WriteString(HeaderStyle.Render(summary.Message))
		b.WriteString("\n\n")
	}

	section := func(title string, style func(...string) string, paths []string) {
		if len(paths) == 0 {
			return
		}
		b.WriteString(style(fmt.Sprintf("%s (%d):", title, len(paths))))
		b.WriteString("\n")
		for _, p := range paths {
			b.WriteString(fmt.Sprintf("  %s\n", p))
		}
	}
	section("Created", SuccessStyle.Render, summary.Created)
	section("Modified", SuccessStyle.Render, summary.Modified)
	section("Deleted", SuccessStyle.Render, summary.Deleted)
	section("Skipped", FaintStyle.Render, summary.Skipped)
	section("Failed", ErrorStyle.Render, summary.Failed)

	if summary.Empty() && summary.Message == "" {
		b.WriteString(FaintStyle.Render("Nothing to do."))
		b.WriteString("\n")
	}
	return b.String()
}

// PrintSummary writes the rendered summary to the message output.
func PrintSummary(summary model.Summary) {
	Header("\n--- Extraction Summary ---")
	fmt.Fprint(out, RenderSummary(summary))
}
