package service

import (
	"context"
	"sync"

	"dochub/internal/modules/org/domain"
	orgout "dochub/internal/modules/org/port/out"
	"dochub/internal/platform/rest"
)

// DirectoryService mirrors the backend's category and user records.
// Reads are cache-first once warmed; every mutation goes to the
// backend before the cache is touched.
type DirectoryService struct {
	api   orgout.DirectoryAPI
	cache orgout.DirectoryCache

	mu              sync.Mutex
	categoriesFresh bool
	usersFresh      bool
}

func NewDirectoryService(api orgout.DirectoryAPI, cache orgout.DirectoryCache) *DirectoryService {
	return &DirectoryService{api: api, cache: cache}
}

func (s *DirectoryService) ListCategories(ctx context.Context, force bool) ([]domain.Category, error) {
	s.mu.Lock()
	needsFetch := force || !s.categoriesFresh
	s.mu.Unlock()

	if needsFetch {
		categories, err := s.api.ListCategories(ctx)
		if err != nil {
			if rest.IsNetworkError(err) {
				if cached, cacheErr := s.cache.ListCategories(ctx); cacheErr == nil && len(cached) > 0 {
					return cached, nil
				}
			}
			return nil, err
		}
		if err := s.cache.ReplaceCategories(ctx, categories); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.categoriesFresh = true
		s.mu.Unlock()
	}
	return s.cache.ListCategories(ctx)
}

func (s *DirectoryService) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	category = category.Normalize()
	if err := category.Validate(); err != nil {
		return domain.Category{}, err
	}
	created, err := s.api.CreateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, err
	}
	if err := s.cache.UpsertCategory(ctx, created); err != nil {
		return domain.Category{}, err
	}
	return created, nil
}

func (s *DirectoryService) UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	category = category.Normalize()
	if err := category.Validate(); err != nil {
		return domain.Category{}, err
	}
	updated, err := s.api.UpdateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, err
	}
	if err := s.cache.UpsertCategory(ctx, updated); err != nil {
		return domain.Category{}, err
	}
	return updated, nil
}

func (s *DirectoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	return s.cache.RemoveCategory(ctx, id)
}

func (s *DirectoryService) ListUsers(ctx context.Context, force bool) ([]domain.User, error) {
	s.mu.Lock()
	needsFetch := force || !s.usersFresh
	s.mu.Unlock()

	if needsFetch {
		users, err := s.api.ListUsers(ctx)
		if err != nil {
			if rest.IsNetworkError(err) {
				if cached, cacheErr := s.cache.ListUsers(ctx); cacheErr == nil && len(cached) > 0 {
					return cached, nil
				}
			}
			return nil, err
		}
		if err := s.cache.ReplaceUsers(ctx, users); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.usersFresh = true
		s.mu.Unlock()
	}
	return s.cache.ListUsers(ctx)
}

func (s *DirectoryService) CreateUser(ctx context.Context, user domain.User, password string) (domain.User, error) {
	if err := user.Validate(); err != nil {
		return domain.User{}, err
	}
	created, err := s.api.CreateUser(ctx, user, password)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.cache.UpsertUser(ctx, created); err != nil {
		return domain.User{}, err
	}
	return created, nil
}

func (s *DirectoryService) UpdateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if err := user.Validate(); err != nil {
		return domain.User{}, err
	}
	updated, err := s.api.UpdateUser(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.cache.UpsertUser(ctx, updated); err != nil {
		return domain.User{}, err
	}
	return updated, nil
}

func (s *DirectoryService) DeleteUser(ctx context.Context, id string) error {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	return s.cache.RemoveUser(ctx, id)
}
