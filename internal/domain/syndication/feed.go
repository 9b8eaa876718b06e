// Package syndication generates syndication feed documents.
//
// A Feed accumulates metadata and an ordered list of items, then one of
// the dialect types (RSSUserland091Feed, RSS201Rev2Feed, Atom1Feed)
// renders it to XML:
//
//	feed := syndication.NewRSS201Rev2Feed(syndication.Metadata{
//		Title:       "Poynter E-Media Tidbits",
//		Link:        "http://www.poynter.org/column.asp?id=31",
//		Description: "A group weblog by the sharpest minds in online media.",
//		Language:    "en",
//	})
//	feed.AddItem(syndication.Item{
//		Title:       "Hello",
//		Link:        "http://www.holovaty.com/test/",
//		Description: "Testing.",
//	})
//	err := feed.Write(os.Stdout, "utf-8")
//
// A Feed is not safe for concurrent AddItem calls. Serialization never
// mutates the feed, so once a feed is fully built it may be written any
// number of times, from any number of goroutines.
package syndication

import (
	"errors"
	"io"
	"time"
)

// ErrNoSerializer is returned when Write or WriteString is called on a
// bare Feed instead of one of the dialect types.
var ErrNoSerializer = errors.New("syndication: feed is not bound to a dialect")

// Metadata holds the feed-level fields.
//
// Link-like fields (Link, AuthorLink, FeedURL) are passed through
// IRIToURI on construction. ID defaults to Link when empty. TTL is
// carried verbatim as text; no validation is performed on any field.
type Metadata struct {
	Title       string
	Link        string
	Description string
	Language    string
	AuthorName  string
	AuthorEmail string
	AuthorLink  string
	Subtitle    string
	Categories  []string
	FeedURL     string
	Copyright   string
	ID          string
	TTL         string
}

// Item is a single entry within a feed. Optional fields left at their
// zero value are omitted from the serialized output entirely.
type Item struct {
	Title       string
	Link        string
	Description string
	AuthorName  string
	AuthorEmail string
	AuthorLink  string
	PubDate     *time.Time
	Comments    string
	UniqueID    string
	Enclosure   *Enclosure
	Categories  []string
	Copyright   string
	TTL         string
}

// Enclosure references an external media resource attached to an item.
// Length is a byte count carried as text, emitted verbatim.
type Enclosure struct {
	URL    string
	Length string
	Type   string
}

// NewEnclosure returns an Enclosure with its URL IRI-normalized.
func NewEnclosure(url, length, mimeType string) *Enclosure {
	return &Enclosure{URL: IRIToURI(url), Length: length, Type: mimeType}
}

// Feed is the dialect-agnostic feed model. Items are append-only and
// kept in insertion order.
type Feed struct {
	meta  Metadata
	items []Item
}

// New returns a Feed with normalized metadata.
func New(meta Metadata) *Feed {
	meta.Link = IRIToURI(meta.Link)
	meta.AuthorLink = IRIToURI(meta.AuthorLink)
	meta.FeedURL = IRIToURI(meta.FeedURL)
	if meta.ID == "" {
		meta.ID = meta.Link
	}
	meta.Categories = append([]string(nil), meta.Categories...)
	return &Feed{meta: meta}
}

// Metadata returns the feed's normalized metadata.
func (f *Feed) Metadata() Metadata {
	return f.meta
}

// AddItem appends an item, normalizing its link-like fields the same
// way New does for the feed. Items cannot be removed.
func (f *Feed) AddItem(item Item) {
	item.Link = IRIToURI(item.Link)
	item.AuthorLink = IRIToURI(item.AuthorLink)
	item.Categories = append([]string(nil), item.Categories...)
	if item.Enclosure != nil {
		enc := *item.Enclosure
		enc.URL = IRIToURI(enc.URL)
		item.Enclosure = &enc
	}
	f.items = append(f.items, item)
}

// NumItems returns the number of items appended so far.
func (f *Feed) NumItems() int {
	return len(f.items)
}

// Items returns a copy of the item list in insertion order.
func (f *Feed) Items() []Item {
	out := make([]Item, len(f.items))
	copy(out, f.items)
	return out
}

// LatestPostDate returns the most recent PubDate across all items. If
// no item carries a PubDate it returns the current time, so callers
// needing deterministic output must date their items.
func (f *Feed) LatestPostDate() time.Time {
	var latest time.Time
	for _, item := range f.items {
		if item.PubDate != nil && item.PubDate.After(latest) {
			latest = *item.PubDate
		}
	}
	if latest.IsZero() {
		return time.Now()
	}
	return latest
}

// Write on a bare Feed fails: serialization requires one of the dialect
// types wrapping the feed.
func (f *Feed) Write(io.Writer, string) error {
	return ErrNoSerializer
}

// WriteString on a bare Feed fails for the same reason Write does.
func (f *Feed) WriteString(string) (string, error) {
	return "", ErrNoSerializer
}
