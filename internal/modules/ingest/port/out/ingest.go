package out

import (
	"context"

	"dochub/internal/modules/ingest/domain"
)

// SubmitResult is the transport's answer. An empty RemoteJobID means
// the backend ingested synchronously and there is nothing to poll.
type SubmitResult struct {
	RemoteJobID string
}

// Transport packages validated files plus metadata into one multipart
// request. onProgress receives bytesSent/bytesTotal fractions in
// [0, 1]; callers must tolerate bursty delivery.
type Transport interface {
	Submit(ctx context.Context, files []domain.PendingFile, meta domain.UploadMetadata, onProgress func(fraction float64)) (SubmitResult, error)
}

// PollUpdate is one successful status response. Completed/Total are
// zero when the backend does not report per-file counts.
type PollUpdate struct {
	ProgressPct float64
	Completed   int
	Total       int
}

// StatusPoller repeatedly queries the job-status endpoint until the
// server reports completion or the first poll error. Poll returns nil
// on completion and must stop its timer on every exit path, including
// context cancellation.
type StatusPoller interface {
	Poll(ctx context.Context, remoteJobID string, onUpdate func(PollUpdate)) error
}

// FileSource resolves raw file handles (paths) into PendingFiles.
type FileSource interface {
	Describe(ctx context.Context, paths []string) ([]domain.PendingFile, error)
}

// Preflight inspects an accepted file before upload; a non-nil error
// removes it from the submission with a user-visible reason.
type Preflight interface {
	Check(ctx context.Context, file domain.PendingFile) error
}
