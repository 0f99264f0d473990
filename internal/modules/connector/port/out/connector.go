package out

import (
	"context"

	"dochub/internal/modules/connector/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host runs a connector binary for the duration of one call.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ListFiles(ctx context.Context, manifest domain.Manifest) ([]domain.RemoteFile, error)
	FetchFile(ctx context.Context, manifest domain.Manifest, remoteID, destDir string) (domain.FetchResult, error)
}
