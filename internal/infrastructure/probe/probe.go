// Package probe fills in enclosure metadata over HTTP.
package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tesso57/feedsmith/internal/domain/syndication"
)

// Prober resolves the byte length and MIME type of media URLs with a
// HEAD request.
type Prober struct {
	client *resty.Client
}

// New returns a Prober with the given per-request timeout.
func New(timeout time.Duration) *Prober {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Feedsmith/1.0")
	return &Prober{client: client}
}

// Enclosure builds an enclosure for url. On probe failure the enclosure
// is still returned, with empty length and type, alongside the error;
// the feed stays publishable either way.
func (p *Prober) Enclosure(ctx context.Context, url string) (*syndication.Enclosure, error) {
	resp, err := p.client.R().SetContext(ctx).Head(url)
	if err != nil {
		return syndication.NewEnclosure(url, "", ""), fmt.Errorf("probe %s: %w", url, err)
	}
	if resp.IsError() {
		return syndication.NewEnclosure(url, "", ""), fmt.Errorf("probe %s: status %s", url, resp.Status())
	}

	length := resp.Header().Get("Content-Length")
	mimeType := resp.Header().Get("Content-Type")
	return syndication.NewEnclosure(url, length, mimeType), nil
}
