package syndication

import (
	"strings"
	"time"
)

// RFC2822Date renders t in the email date format RSS requires, e.g.
// "Tue, 01 Jan 2008 12:00:00 +0000". The time is rendered in its own
// location.
func RFC2822Date(t time.Time) string {
	return t.Format(time.RFC1123Z)
}

// RFC3339Date renders t in the ISO-8601 profile Atom requires. Times
// with a non-zero offset render "2006-01-02T15:04:05-0700"; times at
// offset zero render a literal "Z" suffix.
//
// Note the asymmetry with RFC2822Date: a timestamp with no meaningful
// zone ends up treated as UTC here but as wall-clock time by the RSS
// formatter. Feed consumers in the wild depend on this exact behavior,
// so it is kept as-is.
func RFC3339Date(t time.Time) string {
	if _, offset := t.Zone(); offset == 0 {
		return t.Format("2006-01-02T15:04:05Z")
	}
	return t.Format("2006-01-02T15:04:05-0700")
}

// TagURI builds a tag: URI (RFC 4151) from a URL and an optional date
// (zero time means no date). It is used as the fallback identifier for
// Atom entries that carry no explicit unique id.
//
//	TagURI("http://example.org/foo/bar#headline", d) // tag:example.org,2004-10-25:/foo/bar/headline
func TagURI(url string, date time.Time) string {
	tag := strings.TrimPrefix(url, "http://")
	if !date.IsZero() {
		if i := strings.Index(tag, "/"); i >= 0 {
			tag = tag[:i] + "," + date.Format("2006-01-02") + ":" + tag[i:]
		}
	}
	tag = strings.ReplaceAll(tag, "#", "/")
	return "tag:" + tag
}
