package bundle

import (
	"bufio"
	"encoding/base64"
	"io"
	"strings"

	"github.com/sokinpui/dogs/internal/delta"
)

// File is one entry to encode into a bundle.
type File struct {
	Path    string
	Content []byte
	Binary  bool
}

// Encode writes files as marker-delimited blocks. Text content is written
// verbatim and binary content as a single base64 line. Text that parsing
// would not reproduce byte for byte is encoded as binary too.
func Encode(w io.Writer, files []File) error {
	bw := bufio.NewWriter(w)
	for i, f := range files {
		if i > 0 {
			bw.WriteString("\n")
		}
		binary := f.Binary || !survivesAsText(f.Content)
		m := Marker{Kind: StartMarker, Path: f.Path, Binary: binary}
		bw.WriteString(FormatMarker(m) + "\n")

		if binary {
			bw.WriteString(base64.StdEncoding.EncodeToString(f.Content) + "\n")
		} else if len(f.Content) > 0 {
			bw.Write(f.Content)
			if !strings.HasSuffix(string(f.Content), "\n") {
				bw.WriteString("\n")
			}
		}

		m.Kind = EndMarker
		bw.WriteString(FormatMarker(m) + "\n")
	}
	return bw.Flush()
}

// survivesAsText reports whether content parses back unchanged from a text
// block: no marker or command lines, no outer fence, no leading or trailing
// blank lines, LF endings and a final newline.
func survivesAsText(content []byte) bool {
	s := string(content)
	lines := delta.SplitLines(s)
	for _, line := range lines {
		if _, ok := ScanMarker(line); ok {
			return false
		}
		if _, ok := delta.CommandText(line); ok {
			return false
		}
	}
	return delta.JoinLines(Finalize(lines)) == s
}
