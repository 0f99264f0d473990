package in

import (
	"context"

	"dochub/internal/modules/connector/dto"
)

type Usecase interface {
	// List returns every declared connector, valid or not runnable.
	List(ctx context.Context) ([]dto.ConnectorInfo, error)
	// Check probes each connector's binary, checksum and lifecycle.
	Check(ctx context.Context) ([]dto.CheckResult, error)
	// ListFiles queries one connector's remote listing.
	ListFiles(ctx context.Context, connector string) ([]dto.RemoteFileOutput, error)
	// Fetch stages one remote file locally for the upload flow.
	Fetch(ctx context.Context, input dto.FetchInput) (dto.FetchOutput, error)
}
