package out

import (
	"context"

	"dochub/internal/modules/org/domain"
)

// DirectoryAPI is the backend's admin surface for categories and
// organization users.
type DirectoryAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, user domain.User, password string) (domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) (domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// DirectoryCache mirrors both entity sets locally, with the same
// invalidate-and-refetch lifecycle as the file cache.
type DirectoryCache interface {
	ReplaceCategories(ctx context.Context, categories []domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpsertCategory(ctx context.Context, category domain.Category) error
	RemoveCategory(ctx context.Context, id string) error

	ReplaceUsers(ctx context.Context, users []domain.User) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpsertUser(ctx context.Context, user domain.User) error
	RemoveUser(ctx context.Context, id string) error
}
