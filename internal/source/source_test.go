package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGetContentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reply.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	sp := New(path)
	if sp.Describe() != path {
		t.Errorf("Describe() = %q", sp.Describe())
	}
	got, err := sp.GetContent()
	if err != nil || got != "hello" {
		t.Errorf("GetContent() = %q, %v", got, err)
	}
}

func TestGetContentMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope")).GetContent()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestGetContentFromPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		w.WriteString("piped reply")
		w.Close()
	}()
	defer r.Close()

	sp := New("")
	sp.stdin = r
	if sp.Describe() != "stdin" {
		t.Fatalf("Describe() = %q, want stdin", sp.Describe())
	}
	got, err := sp.GetContent()
	if err != nil || got != "piped reply" {
		t.Errorf("GetContent() = %q, %v", got, err)
	}
	if IsInteractive(r) {
		t.Error("a pipe is not interactive")
	}
}

func TestGetContentFromClipboard(t *testing.T) {
	sp := New("")
	sp.stdin = nil
	sp.readClipboard = func() (string, error) { return "from clipboard", nil }
	if sp.Describe() != "clipboard" {
		t.Fatalf("Describe() = %q, want clipboard", sp.Describe())
	}
	got, err := sp.GetContent()
	if err != nil || got != "from clipboard" {
		t.Errorf("GetContent() = %q, %v", got, err)
	}

	sp.readClipboard = func() (string, error) { return "", errors.New("no clipboard") }
	if _, err := sp.GetContent(); err == nil {
		t.Error("expected clipboard error")
	}
}
