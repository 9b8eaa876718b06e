package syndication

import (
	"bytes"
	"fmt"
	"io"
)

// Feed MIME types, for callers setting response content types.
const (
	RSSMIMEType  = "application/rss+xml"
	AtomMIMEType = "application/atom+xml"
)

// Format names accepted by ByFormat.
const (
	FormatRSS091 = "rss091"
	FormatRSS    = "rss"
	FormatAtom   = "atom"
)

// Serializer renders a feed model to one XML dialect. The set of
// dialects is closed: RSS 0.91, RSS 2.0 and Atom 1.0. Serializing
// never mutates the underlying feed and may be repeated.
type Serializer interface {
	// Write emits a complete XML document to w, transcoded to the
	// named encoding (empty means utf-8).
	Write(w io.Writer, encoding string) error
	// WriteString returns the document as an in-memory string.
	WriteString(encoding string) (string, error)
	// MIMEType reports the content type of the dialect.
	MIMEType() string
}

// ByFormat binds f to the named dialect. "rss" is RSS 2.0, the default
// dialect of the package.
func ByFormat(format string, f *Feed) (Serializer, error) {
	switch format {
	case FormatRSS091:
		return RSSUserland091Feed{f}, nil
	case FormatRSS, "":
		return RSS201Rev2Feed{f}, nil
	case FormatAtom:
		return Atom1Feed{f}, nil
	}
	return nil, fmt.Errorf("syndication: unknown feed format %q", format)
}

// streamWriter is the piece of Serializer the shared WriteString
// implementation needs.
type streamWriter interface {
	Write(w io.Writer, encoding string) error
}

func writeString(s streamWriter, encoding string) (string, error) {
	var buf bytes.Buffer
	if err := s.Write(&buf, encoding); err != nil {
		return "", err
	}
	return buf.String(), nil
}
