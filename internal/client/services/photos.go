package services

import (
	"context"
	"fmt"

	"github.com/confsync/confsync/internal/client/models"
	"github.com/confsync/confsync/internal/client/repositories/guests"
	"github.com/confsync/confsync/internal/common"
	"github.com/confsync/confsync/internal/logging"
)

// PhotoFetcher is the part of the API client the photo service needs.
type PhotoFetcher interface {
	FetchBytes(ctx context.Context, rawURL string) ([]byte, error)
}

// PhotoService lazily fetches and caches guest photos. Photos are not part
// of the sync payload: the first request pulls the image over HTTP and
// stores the bytes next to the guest row; later requests hit the cache.
type PhotoService struct {
	fetcher PhotoFetcher
	repo    guests.Repository
	log     logging.Logger
}

func NewPhotoService(fetcher PhotoFetcher, repo guests.Repository, log logging.Logger) *PhotoService {
	return &PhotoService{fetcher: fetcher, repo: repo, log: log}
}

// Photo returns a guest's photo bytes, fetching and caching them on first
// use. hiRes selects the high-resolution URL when the guest has one.
func (s *PhotoService) Photo(ctx context.Context, key models.GuestKey, hiRes bool) ([]byte, error) {
	g, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if g.Photo != nil {
		return g.Photo, nil
	}

	url := g.PhotoURL
	if hiRes && g.HiResPhotoURL != "" {
		url = g.HiResPhotoURL
	}
	if url == "" {
		return nil, fmt.Errorf("guest %s/%s has no photo url: %w", key.Category, key.ID, common.ErrNotFound)
	}

	b, err := s.fetcher.FetchBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetPhoto(ctx, key, b); err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "guest photo cached", "guest", key.Category+"/"+key.ID, "bytes", len(b))
	return b, nil
}
