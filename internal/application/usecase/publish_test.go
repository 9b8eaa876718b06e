package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/feedsmith/internal/application/settings"
	"github.com/tesso57/feedsmith/internal/domain/harvest"
)

type stubArticleRepo struct {
	articles    []harvest.Article
	err         error
	lastSources []string
	lastLimit   int
}

func (s *stubArticleRepo) ListBySources(sources []string, limit int) ([]harvest.Article, error) {
	s.lastSources = sources
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.articles, nil
}

func testSettings(channels ...settings.Channel) settings.Settings {
	return settings.Settings{
		Sources:  []string{"https://a.example/rss"},
		Channels: channels,
		Encoding: "utf-8",
	}
}

func testChannel() settings.Channel {
	return settings.Channel{
		Name:        "frontpage",
		Title:       "Front Page",
		Link:        "https://example.com/",
		Description: "Latest links",
	}
}

func TestPublishService_Render(t *testing.T) {
	pub := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	repo := &stubArticleRepo{articles: []harvest.Article{
		{
			GUID:        "https://a.example/1",
			Title:       "First",
			Link:        "https://a.example/1",
			Description: "Body",
			PublishedAt: &pub,
		},
	}}

	svc := NewPublishService(repo, testSettings(testChannel()), nil)
	rendered, err := svc.Render(testChannel())
	require.NoError(t, err)

	assert.Equal(t, "application/rss+xml", rendered.MIMEType)
	assert.Equal(t, "frontpage.rss", rendered.Filename)
	assert.Contains(t, rendered.Body, `<rss version="2.0">`)
	assert.Contains(t, rendered.Body, "<title>First</title>")
	assert.Contains(t, rendered.Body, "<guid>https://a.example/1</guid>")
	assert.Contains(t, rendered.Body, "<pubDate>Sat, 14 Feb 2026 12:00:00 +0000</pubDate>")
	assert.Equal(t, []string{"https://a.example/rss"}, repo.lastSources)
	assert.Equal(t, defaultMaxItems, repo.lastLimit)
}

func TestPublishService_RenderAtom(t *testing.T) {
	ch := testChannel()
	ch.Format = "atom"
	pub := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	repo := &stubArticleRepo{articles: []harvest.Article{
		{Title: "First", Link: "https://a.example/1", PublishedAt: &pub},
	}}

	svc := NewPublishService(repo, testSettings(ch), nil)
	rendered, err := svc.Render(ch)
	require.NoError(t, err)

	assert.Equal(t, "application/atom+xml", rendered.MIMEType)
	assert.Equal(t, "frontpage.atom", rendered.Filename)
	assert.Contains(t, rendered.Body, `<feed xmlns="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, rendered.Body, "<updated>2026-02-14T12:00:00Z</updated>")
}

func TestPublishService_RenderUnknownFormat(t *testing.T) {
	ch := testChannel()
	ch.Format = "jsonfeed"
	svc := NewPublishService(&stubArticleRepo{}, testSettings(ch), nil)

	_, err := svc.Render(ch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frontpage")
}

func TestPublishService_RenderRepoError(t *testing.T) {
	repoErr := errors.New("db locked")
	svc := NewPublishService(&stubArticleRepo{err: repoErr}, testSettings(testChannel()), nil)

	_, err := svc.Render(testChannel())
	require.ErrorIs(t, err, repoErr)
}

func TestPublishService_RenderByName(t *testing.T) {
	svc := NewPublishService(&stubArticleRepo{}, testSettings(testChannel()), nil)

	_, err := svc.RenderByName("frontpage")
	require.NoError(t, err)

	_, err = svc.RenderByName("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown channel")
}

func TestPublishService_SummarizesContentWithoutDescription(t *testing.T) {
	repo := &stubArticleRepo{articles: []harvest.Article{
		{Title: "First", Link: "https://a.example/1", Content: "<p>long body</p>"},
	}}
	summarize := func(html string, _ int) (string, error) {
		return "summarized:" + html, nil
	}

	svc := NewPublishService(repo, testSettings(testChannel()), summarize)
	rendered, err := svc.Render(testChannel())
	require.NoError(t, err)

	assert.Contains(t, rendered.Body, "summarized:&lt;p&gt;long body&lt;/p&gt;")
}

func TestPublishService_ExplicitDescriptionNotSummarized(t *testing.T) {
	repo := &stubArticleRepo{articles: []harvest.Article{
		{Title: "First", Link: "https://a.example/1", Description: "explicit", Content: "<p>ignored</p>"},
	}}
	summarize := func(string, int) (string, error) {
		t.Fatal("summarizer must not run for explicit descriptions")
		return "", nil
	}

	svc := NewPublishService(repo, testSettings(testChannel()), summarize)
	rendered, err := svc.Render(testChannel())
	require.NoError(t, err)
	assert.Contains(t, rendered.Body, "<description>explicit</description>")
}

func TestPublishService_ItemEnclosure(t *testing.T) {
	repo := &stubArticleRepo{articles: []harvest.Article{
		{
			Title:           "Episode",
			Link:            "https://a.example/ep1",
			EnclosureURL:    "https://a.example/ep1.mp3",
			EnclosureLength: "4321",
			EnclosureType:   "audio/mpeg",
		},
	}}

	svc := NewPublishService(repo, testSettings(testChannel()), nil)
	rendered, err := svc.Render(testChannel())
	require.NoError(t, err)
	assert.Contains(t, rendered.Body, `<enclosure url="https://a.example/ep1.mp3" length="4321" type="audio/mpeg"/>`)
}

func TestPublishService_MaxItemsPassedToRepo(t *testing.T) {
	ch := testChannel()
	ch.MaxItems = 7
	repo := &stubArticleRepo{}

	svc := NewPublishService(repo, testSettings(ch), nil)
	_, err := svc.Render(ch)
	require.NoError(t, err)
	assert.Equal(t, 7, repo.lastLimit)
}

func TestPublishService_WriteAll(t *testing.T) {
	rss := testChannel()
	atom := settings.Channel{Name: "mirror", Title: "Mirror", Link: "https://example.com/", Description: "D", Format: "atom"}
	repo := &stubArticleRepo{}

	dir := filepath.Join(t.TempDir(), "out")
	svc := NewPublishService(repo, testSettings(rss, atom), nil)

	paths, err := svc.WriteAll(dir)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "frontpage.rss"), paths[0])
	assert.Equal(t, filepath.Join(dir, "mirror.atom"), paths[1])

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "<?xml"))
	}
}

func TestPublishService_Items(t *testing.T) {
	pub := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	repo := &stubArticleRepo{articles: []harvest.Article{
		{Title: "First", Link: "https://a.example/1", PublishedAt: &pub, Categories: []string{"go"}},
	}}

	svc := NewPublishService(repo, testSettings(testChannel()), nil)
	items, err := svc.Items(testChannel())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "First", items[0].Title)
	require.NotNil(t, items[0].PubDate)
	assert.True(t, items[0].PubDate.Equal(pub))
}
