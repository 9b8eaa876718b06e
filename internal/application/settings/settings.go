// Package settings defines application-level configuration data.
package settings

// Channel defines one output feed assembled from harvested articles.
// Metadata fields map straight onto the syndication feed model; Format
// selects the wire dialect.
type Channel struct {
	Name        string   `yaml:"name"`
	Title       string   `yaml:"title"`
	Link        string   `yaml:"link"`
	Description string   `yaml:"description"`
	Format      string   `yaml:"format,omitempty"`
	Language    string   `yaml:"language,omitempty"`
	FeedURL     string   `yaml:"feed_url,omitempty"`
	AuthorName  string   `yaml:"author_name,omitempty"`
	AuthorEmail string   `yaml:"author_email,omitempty"`
	AuthorLink  string   `yaml:"author_link,omitempty"`
	Subtitle    string   `yaml:"subtitle,omitempty"`
	Categories  []string `yaml:"categories,omitempty"`
	Copyright   string   `yaml:"copyright,omitempty"`
	TTL         string   `yaml:"ttl,omitempty"`
	Sources     []string `yaml:"sources,omitempty"`
	MaxItems    int      `yaml:"max_items,omitempty"`
}

// Settings represents the application configuration.
type Settings struct {
	Sources             []string  `yaml:"sources" kong:"help='Upstream feed URLs to harvest',default='https://news.ycombinator.com/rss'"`
	Channels            []Channel `yaml:"channels"`
	OutputDir           string    `yaml:"output_dir" kong:"help='Directory build writes feed documents into',default='feeds'"`
	DatabaseFile        string    `yaml:"database_file" kong:"help='Article database path'"`
	Listen              string    `yaml:"listen" kong:"help='HTTP listen address for serve',default=':8654'"`
	Encoding            string    `yaml:"encoding" kong:"help='Output document encoding',default='utf-8'"`
	FetchTimeoutSeconds int       `yaml:"fetch_timeout_seconds" kong:"help='Upstream fetch timeout in seconds',default='10'"`
	ProbeTimeoutSeconds int       `yaml:"probe_timeout_seconds" kong:"help='Enclosure probe timeout in seconds',default='5'"`
	MaxItemsPerSource   int       `yaml:"max_items_per_source" kong:"help='Articles kept per source; older ones are pruned',default='200'"`
}

// ChannelByName finds a channel definition by its slug.
func (s Settings) ChannelByName(name string) (Channel, bool) {
	for _, ch := range s.Channels {
		if ch.Name == name {
			return ch, true
		}
	}
	return Channel{}, false
}

// SourceURLs returns the upstream feeds a channel draws from. A channel
// with no explicit source list draws from every configured source.
func (s Settings) SourceURLs(ch Channel) []string {
	if len(ch.Sources) > 0 {
		return append([]string(nil), ch.Sources...)
	}
	return append([]string(nil), s.Sources...)
}
