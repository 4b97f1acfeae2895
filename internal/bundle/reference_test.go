package bundle

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewSnapshot(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, []File{
		{Path: "a.txt", Content: []byte("L1\nL2\nL3\n")},
		{Path: "logo.png", Content: []byte{0x89, 'P', 'N', 'G'}, Binary: true},
		{Path: "empty.txt"},
	})
	if err != nil {
		t.Fatal(err)
	}
	// Reference bundles come from the bundling tool and use the cat dialect.
	text := bytes.ReplaceAll(buf.Bytes(), []byte("🐕 --- DOGS_"), []byte("🐈 --- CATS_"))
	text = bytes.Replace(text, []byte("L1\nL2"), []byte("L1\r\nL2"), 1)

	snap, issues := NewSnapshot(string(text))
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if got, ok := snap.Lines("a.txt"); !ok || !reflect.DeepEqual(got, []string{"L1", "L2", "L3"}) {
		t.Errorf("a.txt = %q, %v", got, ok)
	}
	if _, ok := snap.Lines("logo.png"); ok {
		t.Error("binary files must not be part of the snapshot")
	}
	if got, ok := snap.Lines("empty.txt"); !ok || len(got) != 0 {
		t.Errorf("empty.txt = %q, %v", got, ok)
	}
}

func TestNewSnapshotIgnoresPatchCommands(t *testing.T) {
	text := join(start("a.txt"), "@@ PAWS_CMD REPLACE_LINES(1, 1) @@", "x", end("a.txt"))
	snap, _ := NewSnapshot(text)
	if got := snap["a.txt"]; !reflect.DeepEqual(got, []string{"@@ PAWS_CMD REPLACE_LINES(1, 1) @@", "x"}) {
		t.Errorf("a.txt = %q", got)
	}
}

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.bundle")
	if err := os.WriteFile(path, []byte(join(start("f.go"), "package f", end("f.go"))), 0644); err != nil {
		t.Fatal(err)
	}
	snap, _, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if got := snap["f.go"]; !reflect.DeepEqual(got, []string{"package f"}) {
		t.Errorf("f.go = %q", got)
	}

	snap, _, err = LoadSnapshot(filepath.Join(dir, "missing.bundle"))
	if err == nil {
		t.Fatal("expected an error for a missing reference bundle")
	}
	if snap == nil || len(snap) != 0 {
		t.Errorf("expected an empty usable snapshot, got %v", snap)
	}
}
