package bundle

import (
	"strings"
	"unicode/utf8"
)

// MarkerKind distinguishes block start and end lines.
type MarkerKind int

const (
	StartMarker MarkerKind = iota
	EndMarker
)

// Marker is a recognised block delimiter line.
type Marker struct {
	Kind   MarkerKind
	Path   string
	Binary bool
}

const (
	dogSentinel = "🐕"
	catSentinel = "🐈"

	base64Hint = "(Content:Base64)"
	minDashes  = 3
)

var markerPrefixes = []string{"DOGS", "CATS"}

// ScanMarker recognises lines such as
//
//	🐕 --- DOGS_START_FILE: path/to/file.go ---
//	🐈 --- CATS_END_FILE: img.png (Content:Base64) ---
//
// Matching is case-insensitive and tolerant of surrounding whitespace.
func ScanMarker(line string) (Marker, bool) {
	s := strings.TrimSpace(line)

	s, ok := cutSentinel(s)
	if !ok {
		return Marker{}, false
	}
	s = strings.TrimLeft(s, " \t")

	s, ok = cutDashes(s)
	if !ok {
		return Marker{}, false
	}
	s = strings.TrimLeft(s, " \t")

	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return Marker{}, false
	}
	kind, ok := markerKind(strings.TrimSpace(s[:colon]))
	if !ok {
		return Marker{}, false
	}

	path, binary, ok := cutPath(s[colon+1:])
	if !ok {
		return Marker{}, false
	}
	return Marker{Kind: kind, Path: path, Binary: binary}, true
}

func cutSentinel(s string) (string, bool) {
	for _, sentinel := range []string{dogSentinel, catSentinel} {
		if rest, ok := strings.CutPrefix(s, sentinel); ok {
			// Emoji may be followed by a variation selector.
			if r, size := utf8.DecodeRuneInString(rest); r == '\uFE0F' {
				rest = rest[size:]
			}
			return rest, true
		}
	}
	return s, false
}

func cutDashes(s string) (string, bool) {
	n := 0
	for n < len(s) && s[n] == '-' {
		n++
	}
	if n < minDashes {
		return s, false
	}
	return s[n:], true
}

// markerKind matches "<PREFIX>_START_FILE" and "<PREFIX>_END_FILE".
func markerKind(token string) (MarkerKind, bool) {
	upper := strings.ToUpper(token)
	for _, prefix := range markerPrefixes {
		switch upper {
		case prefix + "_START_FILE":
			return StartMarker, true
		case prefix + "_END_FILE":
			return EndMarker, true
		}
	}
	return 0, false
}

// cutPath takes the text after the colon and splits it into the path and the
// optional binary hint. The path is the shortest prefix that leaves only the
// hint and the closing dash run behind.
func cutPath(s string) (string, bool, bool) {
	s = strings.TrimRight(s, " \t")
	trimmed := strings.TrimRight(s, "-")
	if len(s)-len(trimmed) < minDashes {
		return "", false, false
	}
	s = strings.TrimSpace(trimmed)

	binary := false
	if len(s) >= len(base64Hint) {
		tail := s[len(s)-len(base64Hint):]
		head := s[:len(s)-len(base64Hint)]
		if strings.EqualFold(tail, base64Hint) && (head == "" || strings.HasSuffix(head, " ") || strings.HasSuffix(head, "\t")) {
			binary = true
			s = strings.TrimSpace(head)
		}
	}

	if s == "" {
		return "", false, false
	}
	return s, binary, true
}

// FormatMarker renders a marker line in the reply bundle dialect.
func FormatMarker(m Marker) string {
	token := "DOGS_START_FILE"
	if m.Kind == EndMarker {
		token = "DOGS_END_FILE"
	}
	hint := ""
	if m.Binary {
		hint = " " + base64Hint
	}
	return dogSentinel + " --- " + token + ": " + m.Path + hint + " ---"
}
