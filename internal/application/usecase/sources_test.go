package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/feedsmith/internal/application/settings"
)

type stubSourceRepo struct {
	mock.Mock
	sources []string
}

func (s *stubSourceRepo) List() ([]string, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called()
		sources, _ := args.Get(0).([]string)
		return sources, args.Error(1)
	}
	out := make([]string, len(s.sources))
	copy(out, s.sources)
	return out, nil
}

func (s *stubSourceRepo) Add(url string) error {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(url)
		return args.Error(0)
	}
	s.sources = append(s.sources, url)
	return nil
}

func (s *stubSourceRepo) Remove(index int) error {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(index)
		return args.Error(0)
	}
	if index < 0 || index >= len(s.sources) {
		return errors.New("index out of range")
	}
	s.sources = append(s.sources[:index], s.sources[index+1:]...)
	return nil
}

func TestSourceService_Add(t *testing.T) {
	repo := &stubSourceRepo{sources: []string{"https://a.example/rss"}}
	svc := NewSourceService(repo)

	sources, err := svc.Add("  https://b.example/rss  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/rss"}, sources)
}

func TestSourceService_AddRejectsEmpty(t *testing.T) {
	svc := NewSourceService(&stubSourceRepo{})

	_, err := svc.Add("   ")
	require.Error(t, err)

	_, err = svc.Add("https://a.example/rss feed")
	require.Error(t, err)
}

func TestSourceService_AddPropagatesRepoError(t *testing.T) {
	repo := &stubSourceRepo{}
	repo.On("Add", "https://a.example/rss").Return(errors.New("disk full"))
	svc := NewSourceService(repo)

	_, err := svc.Add("https://a.example/rss")
	require.Error(t, err)
	repo.AssertExpectations(t)
}

func TestSourceService_Remove(t *testing.T) {
	repo := &stubSourceRepo{sources: []string{"a", "b", "c"}}
	svc := NewSourceService(repo)

	sources, err := svc.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, sources)

	_, err = svc.Remove(9)
	require.Error(t, err)
}

type stubChannelRepo struct {
	channels []settings.Channel
}

func (s *stubChannelRepo) Channels() ([]settings.Channel, error) {
	return s.channels, nil
}

func TestChannelService_List(t *testing.T) {
	repo := &stubChannelRepo{channels: []settings.Channel{{Name: "frontpage"}}}
	svc := NewChannelService(repo)

	channels, err := svc.List()
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "frontpage", channels[0].Name)
}
