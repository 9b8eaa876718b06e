// Package source fetches and parses upstream RSS/Atom feeds into
// articles ready for republishing.
package source

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/tesso57/feedsmith/internal/domain/harvest"
)

const feedAcceptHeader = "application/atom+xml, application/rss+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

const maxConcurrentFetches = 5

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// ParserFunc is exposed for testing.
// It allows mocking the feed parsing logic.
var ParserFunc = defaultParser

func defaultParser(ctx context.Context, url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "Feedsmith/1.0"
	fp.Client = &http.Client{Transport: acceptTransport{base: http.DefaultTransport}}
	return fp.ParseURLWithContext(url, ctx)
}

// Fetch parses one upstream feed and converts its entries to articles.
func Fetch(ctx context.Context, url string) ([]harvest.Article, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("source url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	parsed, err := ParserFunc(ctx, url)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	articles := make([]harvest.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		articles = append(articles, convertItem(parsed, item, url, now))
	}
	return articles, nil
}

func convertItem(feed *gofeed.Feed, item *gofeed.Item, url string, now time.Time) harvest.Article {
	a := harvest.Article{
		GUID:        item.GUID,
		Title:       item.Title,
		Link:        item.Link,
		Description: item.Description,
		Content:     item.Content,
		SourceURL:   url,
		SourceTitle: feed.Title,
		Categories:  append([]string(nil), item.Categories...),
		SavedAt:     now,
	}

	if item.PublishedParsed != nil {
		t := *item.PublishedParsed
		a.PublishedAt = &t
	} else if item.UpdatedParsed != nil {
		t := *item.UpdatedParsed
		a.PublishedAt = &t
	}

	if len(item.Authors) > 0 && item.Authors[0] != nil {
		a.AuthorName = item.Authors[0].Name
		a.AuthorEmail = item.Authors[0].Email
	}

	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		enc := item.Enclosures[0]
		a.EnclosureURL = enc.URL
		a.EnclosureLength = enc.Length
		a.EnclosureType = enc.Type
	}

	return a
}

// FetchAll fetches every source with bounded concurrency and aggregates
// the results, newest first. Sources that fail are skipped; their
// errors are joined into the returned error alongside partial results.
func FetchAll(ctx context.Context, urls []string) ([]harvest.Article, error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		all  []harvest.Article
		errs []error
	)

	sem := make(chan struct{}, maxConcurrentFetches)
	for _, url := range urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			articles, err := Fetch(ctx, u)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			all = append(all, articles...)
		}(url)
	}
	wg.Wait()

	sort.SliceStable(all, func(i, j int) bool {
		pi, pj := all[i].PublishedAt, all[j].PublishedAt
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		}
		return pi.After(*pj)
	})

	return all, errors.Join(errs...)
}
