// Package harvest defines models for articles pulled from upstream feeds.
package harvest

import "time"

// Article is one entry harvested from an upstream feed, waiting to be
// republished through an output channel.
type Article struct {
	GUID            string
	Title           string
	Link            string
	Description     string
	Content         string
	AuthorName      string
	AuthorEmail     string
	SourceURL       string
	SourceTitle     string
	Categories      []string
	EnclosureURL    string
	EnclosureLength string
	EnclosureType   string
	PublishedAt     *time.Time
	SavedAt         time.Time
}

// Key returns the identity the store deduplicates on: the upstream
// GUID when present, the link otherwise.
func (a Article) Key() string {
	if a.GUID != "" {
		return a.GUID
	}
	return a.Link
}
