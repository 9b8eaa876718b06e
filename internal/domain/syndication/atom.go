package syndication

import (
	"io"
	"time"

	"github.com/tesso57/feedsmith/internal/xmlutil"
)

// AtomNamespace is the XML namespace of Atom 1.0 documents.
const AtomNamespace = "http://www.w3.org/2005/Atom"

// Atom1Feed renders a feed as Atom 1.0.
type Atom1Feed struct {
	*Feed
}

// NewAtom1Feed returns a feed bound to the Atom 1.0 dialect.
func NewAtom1Feed(meta Metadata) Atom1Feed {
	return Atom1Feed{New(meta)}
}

// MIMEType reports the Atom content type.
func (f Atom1Feed) MIMEType() string { return AtomMIMEType }

// Write emits the feed as an Atom 1.0 document.
func (f Atom1Feed) Write(w io.Writer, encoding string) error {
	ew, closeEW, err := newEncodedWriter(w, encoding)
	if err != nil {
		return err
	}
	g := xmlutil.New(ew, encoding)
	g.StartDocument()
	root := []xmlutil.Attr{{Name: "xmlns", Value: AtomNamespace}}
	if f.meta.Language != "" {
		root = append(root, xmlutil.Attr{Name: "xml:lang", Value: f.meta.Language})
	}
	g.StartElement("feed", root)
	g.AddQuickElement("title", f.meta.Title, nil)
	g.AddQuickElement("link", "", []xmlutil.Attr{{Name: "rel", Value: "alternate"}, {Name: "href", Value: f.meta.Link}})
	if f.meta.FeedURL != "" {
		g.AddQuickElement("link", "", []xmlutil.Attr{{Name: "rel", Value: "self"}, {Name: "href", Value: f.meta.FeedURL}})
	}
	g.AddQuickElement("id", f.meta.ID, nil)
	g.AddQuickElement("updated", RFC3339Date(f.LatestPostDate()), nil)
	if f.meta.AuthorName != "" {
		g.StartElement("author", nil)
		g.AddQuickElement("name", f.meta.AuthorName, nil)
		if f.meta.AuthorEmail != "" {
			g.AddQuickElement("email", f.meta.AuthorEmail, nil)
		}
		if f.meta.AuthorLink != "" {
			g.AddQuickElement("uri", f.meta.AuthorLink, nil)
		}
		g.EndElement("author")
	}
	if f.meta.Subtitle != "" {
		g.AddQuickElement("subtitle", f.meta.Subtitle, nil)
	}
	for _, cat := range f.meta.Categories {
		g.AddQuickElement("category", "", []xmlutil.Attr{{Name: "term", Value: cat}})
	}
	if f.meta.Copyright != "" {
		g.AddQuickElement("rights", f.meta.Copyright, nil)
	}
	f.writeItems(g)
	g.EndElement("feed")
	if err := g.Err(); err != nil {
		return err
	}
	return closeEW()
}

// WriteString returns the Atom document as a string.
func (f Atom1Feed) WriteString(encoding string) (string, error) {
	return writeString(f, encoding)
}

func (f Atom1Feed) writeItems(g *xmlutil.Generator) {
	for _, item := range f.items {
		g.StartElement("entry", nil)
		g.AddQuickElement("title", item.Title, nil)
		g.AddQuickElement("link", "", []xmlutil.Attr{{Name: "href", Value: item.Link}, {Name: "rel", Value: "alternate"}})
		if item.PubDate != nil {
			g.AddQuickElement("updated", RFC3339Date(*item.PubDate), nil)
		}

		if item.AuthorName != "" {
			g.StartElement("author", nil)
			g.AddQuickElement("name", item.AuthorName, nil)
			if item.AuthorEmail != "" {
				g.AddQuickElement("email", item.AuthorEmail, nil)
			}
			if item.AuthorLink != "" {
				g.AddQuickElement("uri", item.AuthorLink, nil)
			}
			g.EndElement("author")
		}

		// Entries always carry an id; without an explicit one a tag URI
		// derived from the link and pubdate stands in.
		uniqueID := item.UniqueID
		if uniqueID == "" {
			var date time.Time
			if item.PubDate != nil {
				date = *item.PubDate
			}
			uniqueID = TagURI(item.Link, date)
		}
		g.AddQuickElement("id", uniqueID, nil)

		if item.Description != "" {
			g.AddQuickElement("summary", item.Description, []xmlutil.Attr{{Name: "type", Value: "html"}})
		}

		if item.Enclosure != nil {
			g.AddQuickElement("link", "", []xmlutil.Attr{
				{Name: "rel", Value: "enclosure"},
				{Name: "href", Value: item.Enclosure.URL},
				{Name: "length", Value: item.Enclosure.Length},
				{Name: "type", Value: item.Enclosure.Type},
			})
		}

		for _, cat := range item.Categories {
			g.AddQuickElement("category", "", []xmlutil.Attr{{Name: "term", Value: cat}})
		}

		if item.Copyright != "" {
			g.AddQuickElement("rights", item.Copyright, nil)
		}

		g.EndElement("entry")
	}
}
