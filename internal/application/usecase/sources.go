package usecase

import (
	"fmt"
	"strings"

	"github.com/tesso57/feedsmith/internal/application/settings"
)

// SourceRepository abstracts persistence for upstream source URLs.
type SourceRepository interface {
	List() ([]string, error)
	Add(url string) error
	Remove(index int) error
}

// SourceService provides source-list operations.
type SourceService struct {
	Repo SourceRepository
}

// NewSourceService constructs a SourceService.
func NewSourceService(repo SourceRepository) SourceService {
	return SourceService{Repo: repo}
}

// List returns all configured source URLs.
func (s SourceService) List() ([]string, error) {
	return s.Repo.List()
}

// Add registers a new source URL and returns the updated list.
func (s SourceService) Add(url string) ([]string, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil, fmt.Errorf("source url is empty")
	}
	if strings.ContainsAny(trimmed, " \t\r\n") {
		return nil, fmt.Errorf("source url contains whitespace")
	}
	if err := s.Repo.Add(trimmed); err != nil {
		return nil, err
	}
	return s.Repo.List()
}

// Remove deletes a source by index and returns the updated list.
func (s SourceService) Remove(index int) ([]string, error) {
	if err := s.Repo.Remove(index); err != nil {
		return nil, err
	}
	return s.Repo.List()
}

// ChannelRepository abstracts access to channel definitions.
type ChannelRepository interface {
	Channels() ([]settings.Channel, error)
}

// ChannelService provides read access to configured channels.
type ChannelService struct {
	Repo ChannelRepository
}

// NewChannelService constructs a ChannelService.
func NewChannelService(repo ChannelRepository) ChannelService {
	return ChannelService{Repo: repo}
}

// List returns all configured channels.
func (s ChannelService) List() ([]settings.Channel, error) {
	return s.Repo.Channels()
}
