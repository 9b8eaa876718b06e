// Package usecase contains application-level services.
package usecase

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tesso57/feedsmith/internal/application/settings"
	"github.com/tesso57/feedsmith/internal/domain/harvest"
	"github.com/tesso57/feedsmith/internal/domain/syndication"
)

// ArticleRepository abstracts the harvested-article store.
type ArticleRepository interface {
	ListBySources(sources []string, limit int) ([]harvest.Article, error)
}

// Summarizer derives a plain-text description from HTML content.
type Summarizer func(html string, maxRunes int) (string, error)

// RenderedFeed is one channel serialized to its wire dialect.
type RenderedFeed struct {
	Channel  settings.Channel
	Body     string
	MIMEType string
	Encoding string
	Filename string
}

// PublishService assembles syndication feeds from stored articles.
type PublishService struct {
	Articles  ArticleRepository
	Settings  settings.Settings
	Summarize Summarizer
}

// NewPublishService constructs a PublishService.
func NewPublishService(articles ArticleRepository, s settings.Settings, summarize Summarizer) PublishService {
	return PublishService{Articles: articles, Settings: s, Summarize: summarize}
}

const defaultMaxItems = 50

// summaryRunes caps derived descriptions; explicit descriptions pass
// through untouched.
const summaryRunes = 500

// Render assembles and serializes one channel.
func (s PublishService) Render(ch settings.Channel) (RenderedFeed, error) {
	limit := ch.MaxItems
	if limit <= 0 {
		limit = defaultMaxItems
	}

	articles, err := s.Articles.ListBySources(s.Settings.SourceURLs(ch), limit)
	if err != nil {
		return RenderedFeed{}, fmt.Errorf("channel %q: loading articles: %w", ch.Name, err)
	}

	feed := syndication.New(syndication.Metadata{
		Title:       ch.Title,
		Link:        ch.Link,
		Description: ch.Description,
		Language:    ch.Language,
		AuthorName:  ch.AuthorName,
		AuthorEmail: ch.AuthorEmail,
		AuthorLink:  ch.AuthorLink,
		Subtitle:    ch.Subtitle,
		Categories:  ch.Categories,
		FeedURL:     ch.FeedURL,
		Copyright:   ch.Copyright,
		TTL:         ch.TTL,
	})
	for _, a := range articles {
		feed.AddItem(s.itemFromArticle(a))
	}

	serializer, err := syndication.ByFormat(ch.Format, feed)
	if err != nil {
		return RenderedFeed{}, fmt.Errorf("channel %q: %w", ch.Name, err)
	}

	body, err := serializer.WriteString(s.Settings.Encoding)
	if err != nil {
		return RenderedFeed{}, fmt.Errorf("channel %q: serializing: %w", ch.Name, err)
	}

	encoding := s.Settings.Encoding
	if encoding == "" {
		encoding = "utf-8"
	}
	return RenderedFeed{
		Channel:  ch,
		Body:     body,
		MIMEType: serializer.MIMEType(),
		Encoding: encoding,
		Filename: Filename(ch),
	}, nil
}

// RenderByName renders the channel with the given slug.
func (s PublishService) RenderByName(name string) (RenderedFeed, error) {
	ch, ok := s.Settings.ChannelByName(name)
	if !ok {
		return RenderedFeed{}, fmt.Errorf("unknown channel %q", name)
	}
	return s.Render(ch)
}

// Items returns the syndication items a channel would publish, for
// previewing without serializing.
func (s PublishService) Items(ch settings.Channel) ([]syndication.Item, error) {
	limit := ch.MaxItems
	if limit <= 0 {
		limit = defaultMaxItems
	}
	articles, err := s.Articles.ListBySources(s.Settings.SourceURLs(ch), limit)
	if err != nil {
		return nil, fmt.Errorf("channel %q: loading articles: %w", ch.Name, err)
	}
	items := make([]syndication.Item, 0, len(articles))
	for _, a := range articles {
		items = append(items, s.itemFromArticle(a))
	}
	return items, nil
}

// WriteAll renders every configured channel into dir and returns the
// written paths.
func (s PublishService) WriteAll(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	for _, ch := range s.Settings.Channels {
		rendered, err := s.Render(ch)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, rendered.Filename)
		if err := os.WriteFile(path, []byte(rendered.Body), 0644); err != nil {
			return paths, fmt.Errorf("channel %q: %w", ch.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Filename is the on-disk name for a channel's rendered document.
func Filename(ch settings.Channel) string {
	switch ch.Format {
	case syndication.FormatAtom:
		return ch.Name + ".atom"
	}
	return ch.Name + ".rss"
}

func (s PublishService) itemFromArticle(a harvest.Article) syndication.Item {
	item := syndication.Item{
		Title:       a.Title,
		Link:        a.Link,
		Description: a.Description,
		AuthorName:  a.AuthorName,
		AuthorEmail: a.AuthorEmail,
		UniqueID:    a.GUID,
		Categories:  a.Categories,
	}
	if a.PublishedAt != nil {
		t := *a.PublishedAt
		item.PubDate = &t
	}
	if item.Description == "" && a.Content != "" && s.Summarize != nil {
		if summary, err := s.Summarize(a.Content, summaryRunes); err == nil {
			item.Description = summary
		}
	}
	if a.EnclosureURL != "" {
		item.Enclosure = syndication.NewEnclosure(a.EnclosureURL, a.EnclosureLength, a.EnclosureType)
	}
	return item
}
