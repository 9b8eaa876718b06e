package syndication

import (
	"io"

	"github.com/tesso57/feedsmith/internal/xmlutil"
)

const dcNamespace = "http://purl.org/dc/elements/1.1/"

// RSSUserland091Feed renders a feed as RSS 0.91. The dialect has no
// item-level author, guid, enclosure or category elements; items carry
// only title, link and an optional description.
type RSSUserland091Feed struct {
	*Feed
}

// NewRSSUserland091Feed returns a feed bound to the RSS 0.91 dialect.
func NewRSSUserland091Feed(meta Metadata) RSSUserland091Feed {
	return RSSUserland091Feed{New(meta)}
}

// MIMEType reports the RSS content type.
func (f RSSUserland091Feed) MIMEType() string { return RSSMIMEType }

// Write emits the feed as an RSS 0.91 document.
func (f RSSUserland091Feed) Write(w io.Writer, encoding string) error {
	return writeRSS(f.Feed, w, encoding, "0.91", f.writeItems)
}

// WriteString returns the RSS 0.91 document as a string.
func (f RSSUserland091Feed) WriteString(encoding string) (string, error) {
	return writeString(f, encoding)
}

func (f RSSUserland091Feed) writeItems(g *xmlutil.Generator) {
	for _, item := range f.items {
		g.StartElement("item", nil)
		g.AddQuickElement("title", item.Title, nil)
		g.AddQuickElement("link", item.Link, nil)
		if item.Description != "" {
			g.AddQuickElement("description", item.Description, nil)
		}
		g.EndElement("item")
	}
}

// RSS201Rev2Feed renders a feed as RSS 2.0 (the 2.01rev2 profile), the
// package's default dialect.
type RSS201Rev2Feed struct {
	*Feed
}

// NewRSS201Rev2Feed returns a feed bound to the RSS 2.0 dialect.
func NewRSS201Rev2Feed(meta Metadata) RSS201Rev2Feed {
	return RSS201Rev2Feed{New(meta)}
}

// MIMEType reports the RSS content type.
func (f RSS201Rev2Feed) MIMEType() string { return RSSMIMEType }

// Write emits the feed as an RSS 2.0 document.
func (f RSS201Rev2Feed) Write(w io.Writer, encoding string) error {
	return writeRSS(f.Feed, w, encoding, "2.0", f.writeItems)
}

// WriteString returns the RSS 2.0 document as a string.
func (f RSS201Rev2Feed) WriteString(encoding string) (string, error) {
	return writeString(f, encoding)
}

func (f RSS201Rev2Feed) writeItems(g *xmlutil.Generator) {
	for _, item := range f.items {
		g.StartElement("item", nil)
		g.AddQuickElement("title", item.Title, nil)
		g.AddQuickElement("link", item.Link, nil)
		if item.Description != "" {
			g.AddQuickElement("description", item.Description, nil)
		}

		switch {
		case item.AuthorName != "" && item.AuthorEmail != "":
			g.AddQuickElement("author", item.AuthorEmail+" ("+item.AuthorName+")", nil)
		case item.AuthorEmail != "":
			g.AddQuickElement("author", item.AuthorEmail, nil)
		case item.AuthorName != "":
			g.AddQuickElement("dc:creator", item.AuthorName, []xmlutil.Attr{{Name: "xmlns:dc", Value: dcNamespace}})
		}

		if item.PubDate != nil {
			g.AddQuickElement("pubDate", RFC2822Date(*item.PubDate), nil)
		}
		if item.Comments != "" {
			g.AddQuickElement("comments", item.Comments, nil)
		}
		if item.UniqueID != "" {
			g.AddQuickElement("guid", item.UniqueID, nil)
		}
		if item.TTL != "" {
			g.AddQuickElement("ttl", item.TTL, nil)
		}

		if item.Enclosure != nil {
			g.AddQuickElement("enclosure", "", []xmlutil.Attr{
				{Name: "url", Value: item.Enclosure.URL},
				{Name: "length", Value: item.Enclosure.Length},
				{Name: "type", Value: item.Enclosure.Type},
			})
		}

		for _, cat := range item.Categories {
			g.AddQuickElement("category", cat, nil)
		}

		g.EndElement("item")
	}
}

// writeRSS emits the channel envelope shared by the RSS dialects.
// Element order is fixed for wire compatibility; optional fields are
// omitted entirely when empty.
func writeRSS(f *Feed, w io.Writer, encoding, version string, writeItems func(*xmlutil.Generator)) error {
	ew, closeEW, err := newEncodedWriter(w, encoding)
	if err != nil {
		return err
	}
	g := xmlutil.New(ew, encoding)
	g.StartDocument()
	g.StartElement("rss", []xmlutil.Attr{{Name: "version", Value: version}})
	g.StartElement("channel", nil)
	g.AddQuickElement("title", f.meta.Title, nil)
	g.AddQuickElement("link", f.meta.Link, nil)
	g.AddQuickElement("description", f.meta.Description, nil)
	if f.meta.Language != "" {
		g.AddQuickElement("language", f.meta.Language, nil)
	}
	for _, cat := range f.meta.Categories {
		g.AddQuickElement("category", cat, nil)
	}
	if f.meta.Copyright != "" {
		g.AddQuickElement("copyright", f.meta.Copyright, nil)
	}
	g.AddQuickElement("lastBuildDate", RFC2822Date(f.LatestPostDate()), nil)
	if f.meta.TTL != "" {
		g.AddQuickElement("ttl", f.meta.TTL, nil)
	}
	writeItems(g)
	g.EndElement("channel")
	g.EndElement("rss")
	if err := g.Err(); err != nil {
		return err
	}
	return closeEW()
}
