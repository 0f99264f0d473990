package in

import (
	"context"

	"dochub/internal/modules/ingest/dto"
)

// ProgressFunc receives every presenter update for the active job.
type ProgressFunc func(dto.ProgressUpdate)

type Usecase interface {
	// Upload validates the selection, runs the full transport +
	// tracking flow and blocks until the job reaches a terminal
	// state. At most one upload may be active per instance.
	Upload(ctx context.Context, input dto.UploadInput, observe ProgressFunc) (dto.UploadOutput, error)
}
