package in

import (
	"context"

	"dochub/internal/modules/library/dto"
)

type Usecase interface {
	// ListFiles returns the backend catalog, served from the local
	// cache when it is fresh and the caller did not force a refresh.
	ListFiles(ctx context.Context, input dto.ListFilesInput) (dto.ListFilesOutput, error)
	// DeleteFile removes a file on the backend and drops it locally.
	DeleteFile(ctx context.Context, id string) error
	// Refresh refetches the authoritative listing unconditionally.
	Refresh(ctx context.Context) error
	// ApplyStatus folds a notify-channel update into the cache.
	ApplyStatus(ctx context.Context, event dto.StatusEventInput) error
}
