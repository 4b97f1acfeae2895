// Package dogs applies reply bundles from Go code without prompting.
package dogs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/sokinpui/dogs/internal/bundle"
	"github.com/sokinpui/dogs/internal/confirm"
	"github.com/sokinpui/dogs/internal/fs"
	"github.com/sokinpui/dogs/internal/reconcile"
)

// Config for using dogs as a library.
type Config struct {
	// OutputDir receives the files. Defaults to the working directory.
	OutputDir string
	// Reference is the text of the bundle that patch commands are resolved
	// against. Empty disables patch mode.
	Reference string
	// Overwrite replaces existing files. Without it only new files are
	// written and deletions are skipped.
	Overwrite bool
}

// Apply parses reply and reconciles it with cfg.OutputDir. The summary is
// keyed by "Created", "Modified", "Deleted", "Skipped" and "Failed".
func Apply(reply string, cfg Config) (map[string][]string, error) {
	dir := cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	resolver, err := fs.NewPathResolver(dir)
	if err != nil {
		return nil, err
	}

	patchMode := cfg.Reference != ""
	res := bundle.Parse(reply, bundle.Options{Patch: patchMode})

	var snapshot bundle.Snapshot
	if patchMode {
		snapshot, _ = bundle.NewSnapshot(cfg.Reference)
	}

	rec := &reconcile.Reconciler{
		Resolver: resolver,
		Sink:     fs.Disk{},
		Prompter: confirm.Decline{},
		Policy:   &confirm.Policy{AlwaysYes: cfg.Overwrite, AlwaysNo: !cfg.Overwrite},
		Snapshot: snapshot,
	}
	summary := rec.Run(res.Actions)

	return map[string][]string{
		"Created":  summary.Created,
		"Modified": summary.Modified,
		"Deleted":  summary.Deleted,
		"Skipped":  summary.Skipped,
		"Failed":   append(res.Failed(), summary.Failed...),
	}, nil
}

// Bundle writes the files at paths, relative to root, as a bundle to w.
// Files that are not valid UTF-8, or whose text would not parse back
// unchanged, are base64 encoded.
func Bundle(w io.Writer, root string, paths []string) error {
	files := make([]bundle.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(filepath.Join(root, p))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		files = append(files, bundle.File{
			Path:    filepath.ToSlash(p),
			Content: data,
			Binary:  !utf8.Valid(data),
		})
	}
	return bundle.Encode(w, files)
}
