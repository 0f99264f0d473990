package out

import (
	"context"

	"dochub/internal/modules/library/domain"
)

// FileAPI is the backend's catalog surface. The listing is
// authoritative; every mutation invalidates the local cache.
type FileAPI interface {
	ListFiles(ctx context.Context) ([]domain.IngestedFile, error)
	DeleteFile(ctx context.Context, id string) error
}

// FileCache is the local projection of the backend listing. It backs
// offline reads and absorbs notify-channel updates between refreshes.
type FileCache interface {
	ReplaceAll(ctx context.Context, files []domain.IngestedFile) error
	List(ctx context.Context) ([]domain.IngestedFile, error)
	Get(ctx context.Context, id string) (domain.IngestedFile, error)
	Upsert(ctx context.Context, file domain.IngestedFile) error
	Remove(ctx context.Context, id string) error
}
