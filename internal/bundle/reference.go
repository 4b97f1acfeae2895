package bundle

import (
	"fmt"
	"os"
	pathpkg "path"
	"strings"

	"github.com/sokinpui/dogs/internal/delta"
)

// Snapshot maps a bundle path to the original lines of that file. It is the
// base that patch commands are resolved against and is never modified.
type Snapshot map[string][]string

// Lines returns the original lines for path. "./a.go" and "a.go" name the
// same entry.
func (s Snapshot) Lines(path string) ([]string, bool) {
	if lines, ok := s[path]; ok {
		return lines, true
	}
	lines, ok := s[snapshotKey(path)]
	return lines, ok
}

func snapshotKey(p string) string {
	return pathpkg.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// NewSnapshot parses a reference bundle and keeps its text files. Patch
// commands inside it are not interpreted.
func NewSnapshot(text string) (Snapshot, []Issue) {
	res := Parse(text, Options{})
	snap := make(Snapshot, len(res.Actions))
	for _, a := range res.Actions {
		w, ok := a.(WriteAction)
		if !ok || w.Binary {
			continue
		}
		lines := delta.SplitLines(string(w.Content))
		if lines == nil {
			lines = []string{}
		}
		snap[snapshotKey(w.Path)] = lines
	}
	return snap, res.Issues
}

// LoadSnapshot reads the reference bundle at path. When the file cannot be
// read the error is returned together with an empty, usable snapshot.
func LoadSnapshot(path string) (Snapshot, []Issue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, nil, fmt.Errorf("failed to read reference bundle: %w", err)
	}
	snap, issues := NewSnapshot(string(data))
	return snap, issues, nil
}
