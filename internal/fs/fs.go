package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Path validation errors.
var (
	ErrPathEscape   = errors.New("path escapes output directory")
	ErrAbsolutePath = errors.New("absolute paths are not allowed")
	ErrInvalidPath  = errors.New("invalid path")
)

// PathResolver maps bundle paths onto an output directory.
type PathResolver struct {
	root string
}

// NewPathResolver creates a resolver rooted at dir.
func NewPathResolver(dir string) (*PathResolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("could not resolve output directory %q: %w", dir, err)
	}
	return &PathResolver{root: abs}, nil
}

// Root returns the absolute output directory.
func (r *PathResolver) Root() string {
	return r.root
}

// Resolve cleans relativePath and joins it with the root. Paths that are
// absolute, contain NUL bytes, or climb out of the root are rejected.
func (r *PathResolver) Resolve(relativePath string) (string, error) {
	if strings.TrimSpace(relativePath) == "" || strings.ContainsRune(relativePath, '\x00') {
		return "", ErrInvalidPath
	}
	if filepath.IsAbs(relativePath) || strings.HasPrefix(relativePath, "/") || strings.HasPrefix(relativePath, `\`) {
		return "", ErrAbsolutePath
	}

	joined := filepath.Join(r.root, filepath.FromSlash(relativePath))
	rel, err := filepath.Rel(r.root, joined)
	if err != nil {
		return "", err
	}
	// "..." or "..foo" are valid names, not traversals.
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrPathEscape
	}
	if rel == "." {
		return "", ErrInvalidPath
	}
	return joined, nil
}

// Relative returns path relative to the root for display, falling back to
// path itself.
func (r *PathResolver) Relative(path string) string {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return path
	}
	return rel
}

// Disk writes straight to the filesystem.
type Disk struct{}

// WriteFile writes data to path, creating parent directories.
func (Disk) WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}

// Remove deletes the file at path.
func (Disk) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("could not delete %s: %w", path, err)
	}
	return nil
}

// ReadExisting returns the content of path. exists is false when there is
// no file at path.
func ReadExisting(path string) (data []byte, exists bool, err error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if info.IsDir() {
		return nil, true, fmt.Errorf("%s is a directory", path)
	}
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
