package nvim

import "testing"

func TestEscapePath(t *testing.T) {
	tests := map[string]string{
		"/tmp/a.go":        "/tmp/a.go",
		"/tmp/my file.txt": `/tmp/my\ file.txt`,
		"/tmp/100%#|x":     `/tmp/100\%\#\|x`,
		`/tmp/back\slash`:  `/tmp/back\\slash`,
	}
	for in, want := range tests {
		if got := escapePath(in); got != want {
			t.Errorf("escapePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsText(t *testing.T) {
	if !isText([]byte("hello\n")) {
		t.Error("plain text reported as binary")
	}
	if isText([]byte{'a', 0, 'b'}) {
		t.Error("NUL byte reported as text")
	}
	if isText([]byte{0xff, 0xfe}) {
		t.Error("invalid UTF-8 reported as text")
	}
}
