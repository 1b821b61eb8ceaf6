package log

import (
	"fmt"
	"io"
	"regexp"
)

// scrubbedElements are wire element names whose character data carries
// credentials: the passport fields a request signs itself with.
var scrubbedElements = []string{"password", "consumerKey", "token", "signature"}

var scrubPatterns = compileScrubPatterns()

func compileScrubPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(scrubbedElements))
	for _, name := range scrubbedElements {
		patterns = append(patterns, regexp.MustCompile(
			fmt.Sprintf(`(?s)(<(?:\w+:)?%s\b[^>]*>).*?(</(?:\w+:)?%s>)`, name, name)))
	}
	return patterns
}

// ScrubXML masks the character data of credential-bearing elements in a
// SOAP document. Input without matches is returned unchanged.
func ScrubXML(data []byte) []byte {
	for _, p := range scrubPatterns {
		data = p.ReplaceAll(data, []byte("${1}[REDACTED]${2}"))
	}
	return data
}

// ScrubbingWriter runs every write through ScrubXML before forwarding it.
// Each Write must carry whole elements; the transport trace writes one
// document per call, which satisfies that.
type ScrubbingWriter struct {
	w io.Writer
}

// NewScrubbingWriter wraps w.
func NewScrubbingWriter(w io.Writer) *ScrubbingWriter {
	return &ScrubbingWriter{w: w}
}

// Write implements io.Writer. The reported length is len(p) so callers do
// not observe a short write when redaction shrinks the payload.
func (s *ScrubbingWriter) Write(p []byte) (int, error) {
	if _, err := s.w.Write(ScrubXML(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}
