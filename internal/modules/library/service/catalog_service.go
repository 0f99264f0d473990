package service

import (
	"context"
	"sync"

	"dochub/internal/modules/library/domain"
	libraryout "dochub/internal/modules/library/port/out"
	"dochub/internal/platform/rest"
)

// CatalogService keeps the local file cache aligned with the backend
// listing. The backend is the source of truth: reads go through the
// cache, mutations invalidate it, and a network failure downgrades a
// read to the last cached listing instead of failing outright.
type CatalogService struct {
	api   libraryout.FileAPI
	cache libraryout.FileCache

	mu    sync.Mutex
	fresh bool
}

func NewCatalogService(api libraryout.FileAPI, cache libraryout.FileCache) *CatalogService {
	return &CatalogService{api: api, cache: cache}
}

// List returns the catalog, refetching when the cache is stale or the
// caller forces it. The returned bool reports whether the listing is a
// stale offline copy.
func (s *CatalogService) List(ctx context.Context, force bool) ([]domain.IngestedFile, bool, error) {
	s.mu.Lock()
	needsFetch := force || !s.fresh
	s.mu.Unlock()

	if needsFetch {
		if err := s.Refresh(ctx); err != nil {
			if !rest.IsNetworkError(err) {
				return nil, false, err
			}
			cached, cacheErr := s.cache.List(ctx)
			if cacheErr != nil || len(cached) == 0 {
				return nil, false, err
			}
			return cached, true, nil
		}
	}
	files, err := s.cache.List(ctx)
	return files, false, err
}

// Refresh replaces the cache with the authoritative backend listing.
func (s *CatalogService) Refresh(ctx context.Context) error {
	files, err := s.api.ListFiles(ctx)
	if err != nil {
		s.Invalidate()
		return err
	}
	if err := s.cache.ReplaceAll(ctx, files); err != nil {
		return err
	}
	s.mu.Lock()
	s.fresh = true
	s.mu.Unlock()
	return nil
}

// Delete removes the file on the backend first; the cache entry is
// only dropped once the backend confirmed the deletion.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteFile(ctx, id); err != nil {
		return err
	}
	return s.cache.Remove(ctx, id)
}

// ApplyStatus merges a partial notify update onto the cached entry.
// An update for an unknown file invalidates the cache so the next
// read refetches the full listing.
func (s *CatalogService) ApplyStatus(ctx context.Context, update domain.IngestedFile) error {
	if err := update.Validate(); err != nil {
		return err
	}
	current, err := s.cache.Get(ctx, update.ID)
	if err != nil {
		s.Invalidate()
		return nil
	}
	return s.cache.Upsert(ctx, current.Merge(update))
}

// Invalidate marks the cache stale without touching its contents.
func (s *CatalogService) Invalidate() {
	s.mu.Lock()
	s.fresh = false
	s.mu.Unlock()
}
