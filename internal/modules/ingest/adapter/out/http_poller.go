package out

import (
	"context"
	"fmt"
	"time"

	"dochub/internal/modules/ingest/domain"
	ingestout "dochub/internal/modules/ingest/port/out"
	"dochub/internal/platform/rest"
)

// HTTPStatusPoller queries the upload-status endpoint on a fixed
// interval. Polls are strictly sequential: the next request is only
// scheduled after the previous response was handled, so updates arrive
// in request order. The very first poll error is terminal for the job;
// there is no silent retry.
type HTTPStatusPoller struct {
	api      *rest.Client
	interval time.Duration
}

func NewHTTPStatusPoller(api *rest.Client, interval time.Duration) ingestout.StatusPoller {
	return &HTTPStatusPoller{api: api, interval: interval}
}

type uploadStatus struct {
	Progress  float64 `json:"progress"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Status    string  `json:"status"`
}

func (p *HTTPStatusPoller) Poll(ctx context.Context, remoteJobID string, onUpdate func(ingestout.PollUpdate)) error {
	if onUpdate == nil {
		onUpdate = func(ingestout.PollUpdate) {}
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	path := fmt.Sprintf("/organization-file/upload-status/%s", remoteJobID)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			status := uploadStatus{}
			if err := p.api.GetJSON(ctx, path, &status); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return &domain.PollError{Message: err.Error()}
			}
			onUpdate(ingestout.PollUpdate{
				ProgressPct: status.Progress,
				Completed:   status.Completed,
				Total:       status.Total,
			})
			if status.Status == "failed" {
				return &domain.PollError{Message: "server reported ingestion failure"}
			}
			if status.Progress >= 100 || status.Status == "completed" {
				return nil
			}
		}
	}
}
