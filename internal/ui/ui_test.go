package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sokinpui/dogs/internal/model"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Output()
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })
	return &buf
}

func TestMessagesGoToOutput(t *testing.T) {
	buf := captureOutput(t)
	Warning("careful with %s", "a.go")
	Error("broken %d", 3)
	got := buf.String()
	if !strings.Contains(got, "careful with a.go") || !strings.Contains(got, "broken 3") {
		t.Errorf("output = %q", got)
	}
}

func TestSetOutputDiscard(t *testing.T) {
	prev := Output()
	defer SetOutput(prev)
	SetOutput(io.Discard)
	Info("nobody sees this")
}

func TestDiffPrintsEveryLine(t *testing.T) {
	buf := captureOutput(t)
	Diff("--- a/x\n+++ b/x\n@@ -1 +1 @@\n-old\n+new\n ctx\n")
	for _, want := range []string{"--- a/x", "+++ b/x", "@@ -1 +1 @@", "-old", "+new", " ctx"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("diff output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestRenderSummary(t *testing.T) {
	got := RenderSummary(model.Summary{
		Created: []string{"a.go"},
		Deleted: []string{"old.txt"},
		Failed:  []string{"../evil.txt"},
	})
	for _, want := range []string{"Created (1):", "a.go", "Deleted (1):", "old.txt", "Failed (1):", "../evil.txt"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Modified") {
		t.Errorf("empty sections must be omitted:\n%s", got)
	}

	if got := RenderSummary(model.Summary{}); !strings.Contains(got, "Nothing to do.") {
		t.Errorf("empty summary = %q", got)
	}
}
