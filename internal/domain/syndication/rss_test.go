package syndication

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestRSS201Rev2_SingleItemRoundTrip(t *testing.T) {
	feed := NewRSS201Rev2Feed(Metadata{
		Title:       "T",
		Link:        "http://example.com/",
		Description: "D",
	})
	feed.AddItem(Item{Title: "I", Link: "http://example.com/1/", Description: "ID"})

	doc, err := feed.WriteString("utf-8")
	if err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	if !strings.HasPrefix(doc, `<?xml version="1.0" encoding="utf-8"?>`) {
		t.Fatalf("missing XML declaration: %q", doc[:min(len(doc), 60)])
	}
	if !strings.Contains(doc, `<rss version="2.0">`) {
		t.Fatalf("missing rss version attribute:\n%s", doc)
	}
	if strings.Count(doc, "<item>") != 1 {
		t.Fatalf("want exactly one item element:\n%s", doc)
	}
	for _, frag := range []string{"<title>I</title>", "<link>http://example.com/1/</link>", "<description>ID</description>"} {
		if !strings.Contains(doc, frag) {
			t.Fatalf("missing %q:\n%s", frag, doc)
		}
	}
	for _, absent := range []string{"<author>", "<guid>", "<enclosure", "dc:creator"} {
		if strings.Contains(doc, absent) {
			t.Fatalf("unexpected %q in minimal item:\n%s", absent, doc)
		}
	}

	parsed, err := gofeed.NewParser().ParseString(doc)
	if err != nil {
		t.Fatalf("generated document does not parse: %v", err)
	}
	if parsed.Title != "T" || len(parsed.Items) != 1 || parsed.Items[0].Title != "I" {
		t.Fatalf("round trip mismatch: %+v", parsed)
	}
}

func TestRSS201Rev2_ChannelElementOrder(t *testing.T) {
	feed := NewRSS201Rev2Feed(Metadata{
		Title:       "T",
		Link:        "http://example.com/",
		Description: "D",
		Language:    "en",
		Categories:  []string{"cat1", "cat2"},
		Copyright:   "(c) Example",
		TTL:         "60",
	})
	feed.AddItem(Item{Title: "I", Link: "http://example.com/1/", PubDate: timePtr(time.Date(2008, 1, 1, 12, 0, 0, 0, time.UTC))})

	doc, err := feed.WriteString("utf-8")
	if err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	// Channel children must appear in the dialect's fixed order.
	order := []string{
		"<title>T</title>",
		"<link>http://example.com/</link>",
		"<description>D</description>",
		"<language>en</language>",
		"<category>cat1</category>",
		"<category>cat2</category>",
		"<copyright>(c) Example</copyright>",
		"<lastBuildDate>Tue, 01 Jan 2008 12:00:00 +0000</lastBuildDate>",
		"<ttl>60</ttl>",
		"<item>",
	}
	pos := 0
	for _, frag := range order {
		i := strings.Index(doc[pos:], frag)
		if i < 0 {
			t.Fatalf("fragment %q missing or out of order:\n%s", frag, doc)
		}
		pos += i + len(frag)
	}
}

func TestRSS201Rev2_ItemAuthorVariants(t *testing.T) {
	tests := []struct {
		name    string
		item    Item
		want    string
		forbids string
	}{
		{
			name: "email and name",
			item: Item{Title: "I", Link: "http://example.com/1/", AuthorName: "Jane Doe", AuthorEmail: "jane@example.com"},
			want: "<author>jane@example.com (Jane Doe)</author>",
		},
		{
			name: "email only",
			item: Item{Title: "I", Link: "http://example.com/1/", AuthorEmail: "jane@example.com"},
			want: "<author>jane@example.com</author>",
		},
		{
			name:    "name only uses dc:creator",
			item:    Item{Title: "I", Link: "http://example.com/1/", AuthorName: "Jane Doe"},
			want:    `<dc:creator xmlns:dc="http://purl.org/dc/elements/1.1/">Jane Doe</dc:creator>`,
			forbids: "<author>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := NewRSS201Rev2Feed(Metadata{Title: "T", Link: "http://example.com/", Description: "D"})
			feed.AddItem(tt.item)
			doc, err := feed.WriteString("utf-8")
			if err != nil {
				t.Fatalf("WriteString failed: %v", err)
			}
			if !strings.Contains(doc, tt.want) {
				t.Fatalf("missing %q:\n%s", tt.want, doc)
			}
			if tt.forbids != "" && strings.Contains(doc, tt.forbids) {
				t.Fatalf("unexpected %q:\n%s", tt.forbids, doc)
			}
		})
	}
}

func TestRSS201Rev2_FullItem(t *testing.T) {
	pub := time.Date(2008, 4, 1, 8, 30, 0, 0, time.UTC)
	feed := NewRSS201Rev2Feed(Metadata{Title: "T", Link: "http://example.com/", Description: "D"})
	feed.AddItem(Item{
		Title:       "I",
		Link:        "http://example.com/1/",
		Description: "ID",
		PubDate:     &pub,
		Comments:    "http://example.com/1/comments/",
		UniqueID:    "http://example.com/1/",
		TTL:         "30",
		Enclosure:   NewEnclosure("http://example.com/1.mp3", "4321", "audio/mpeg"),
		Categories:  []string{"tech", "radio"},
	})

	doc, err := feed.WriteString("utf-8")
	if err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	for _, frag := range []string{
		"<pubDate>Tue, 01 Apr 2008 08:30:00 +0000</pubDate>",
		"<comments>http://example.com/1/comments/</comments>",
		"<guid>http://example.com/1/</guid>",
		"<ttl>30</ttl>",
		`<enclosure url="http://example.com/1.mp3" length="4321" type="audio/mpeg"/>`,
		"<category>tech</category>",
		"<category>radio</category>",
	} {
		if !strings.Contains(doc, frag) {
			t.Fatalf("missing %q:\n%s", frag, doc)
		}
	}

	// Category order mirrors the supplied sequence.
	if strings.Index(doc, "<category>tech</category>") > strings.Index(doc, "<category>radio</category>") {
		t.Fatalf("categories out of order:\n%s", doc)
	}
}

func TestRSSUserland091_OmitsRicherFields(t *testing.T) {
	feed := NewRSSUserland091Feed(Metadata{Title: "T", Link: "http://example.com/", Description: "D"})
	pub := time.Date(2008, 4, 1, 8, 30, 0, 0, time.UTC)
	feed.AddItem(Item{
		Title:       "I",
		Link:        "http://example.com/1/",
		Description: "ID",
		AuthorName:  "Jane Doe",
		AuthorEmail: "jane@example.com",
		PubDate:     &pub,
		UniqueID:    "http://example.com/1/",
		Enclosure:   NewEnclosure("http://example.com/1.mp3", "4321", "audio/mpeg"),
		Categories:  []string{"tech"},
	})

	doc, err := feed.WriteString("utf-8")
	if err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	if !strings.Contains(doc, `<rss version="0.91">`) {
		t.Fatalf("missing 0.91 version attribute:\n%s", doc)
	}
	for _, frag := range []string{"<title>I</title>", "<link>http://example.com/1/</link>", "<description>ID</description>"} {
		if !strings.Contains(doc, frag) {
			t.Fatalf("missing %q:\n%s", frag, doc)
		}
	}
	for _, absent := range []string{"<author>", "<guid>", "<enclosure", "<pubDate>", "dc:creator"} {
		if strings.Contains(doc, absent) {
			t.Fatalf("0.91 item must not contain %q:\n%s", absent, doc)
		}
	}
	if strings.Contains(doc[strings.Index(doc, "<item>"):], "<category>") {
		t.Fatalf("0.91 item must not contain categories:\n%s", doc)
	}
}

func TestRSSUserland091_ItemWithoutDescription(t *testing.T) {
	feed := NewRSSUserland091Feed(Metadata{Title: "T", Link: "http://example.com/", Description: "D"})
	feed.AddItem(Item{Title: "I", Link: "http://example.com/1/"})

	doc, err := feed.WriteString("utf-8")
	if err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	itemPart := doc[strings.Index(doc, "<item>"):]
	if strings.Contains(itemPart, "<description>") {
		t.Fatalf("empty description must be omitted:\n%s", doc)
	}
}

func TestRSS_EscapesMarkup(t *testing.T) {
	feed := NewRSS201Rev2Feed(Metadata{Title: "T & <Co>", Link: "http://example.com/", Description: "D"})
	feed.AddItem(Item{Title: "a < b", Link: "http://example.com/1/", Description: "<p>hi</p>"})

	doc, err := feed.WriteString("utf-8")
	if err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}

	if !strings.Contains(doc, "<title>T &amp; &lt;Co&gt;</title>") {
		t.Fatalf("channel title not escaped:\n%s", doc)
	}
	if !strings.Contains(doc, "<description>&lt;p&gt;hi&lt;/p&gt;</description>") {
		t.Fatalf("item description not escaped:\n%s", doc)
	}

	if _, err := gofeed.NewParser().ParseString(doc); err != nil {
		t.Fatalf("escaped document does not parse: %v", err)
	}
}

func TestRSS_UnknownEncodingRejected(t *testing.T) {
	feed := NewRSS201Rev2Feed(Metadata{Title: "T", Link: "http://example.com/", Description: "D"})
	if _, err := feed.WriteString("klingon-8"); err == nil {
		t.Fatal("unknown encoding must be rejected")
	}
}

func TestRSS_Latin1Output(t *testing.T) {
	feed := NewRSS201Rev2Feed(Metadata{Title: "café", Link: "http://example.com/", Description: "D"})
	feed.AddItem(Item{Title: "I", Link: "http://example.com/1/", PubDate: timePtr(time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC))})

	doc, err := feed.WriteString("iso-8859-1")
	if err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}
	if !strings.Contains(doc, `encoding="iso-8859-1"`) {
		t.Fatalf("declaration must name the requested encoding:\n%s", doc)
	}
	if !strings.Contains(doc, "caf\xe9") {
		t.Fatalf("body must be latin-1 encoded: %q", doc)
	}
}
