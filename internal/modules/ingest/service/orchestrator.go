package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dochub/internal/modules/ingest/domain"
	ingestout "dochub/internal/modules/ingest/port/out"
	"dochub/internal/platform/clock"
	apperrors "dochub/internal/platform/errors"
	"dochub/internal/platform/id"
)

// Orchestrator owns the upload state machine. It composes the
// transport and the status poller, combines their progress into one
// monotonic value and enforces the single-active-job invariant.
type Orchestrator struct {
	clock      clock.Clock
	idGen      id.Generator
	allow      domain.AllowList
	source     ingestout.FileSource
	transport  ingestout.Transport
	poller     ingestout.StatusPoller
	preflight  ingestout.Preflight
	jobTimeout time.Duration

	mu     sync.Mutex
	active bool
}

func NewOrchestrator(
	clk clock.Clock,
	idGen id.Generator,
	allow domain.AllowList,
	source ingestout.FileSource,
	transport ingestout.Transport,
	poller ingestout.StatusPoller,
	preflight ingestout.Preflight,
	jobTimeout time.Duration,
) *Orchestrator {
	return &Orchestrator{
		clock:      clk,
		idGen:      idGen,
		allow:      allow,
		source:     source,
		transport:  transport,
		poller:     poller,
		preflight:  preflight,
		jobTimeout: jobTimeout,
	}
}

// Prepare resolves and validates a submission without starting it.
// Validation failures never reach the network layer.
func (o *Orchestrator) Prepare(ctx context.Context, paths []string, meta domain.UploadMetadata) (domain.Selection, domain.UploadMetadata, error) {
	meta = meta.Normalize()
	if err := meta.Validate(); err != nil {
		return domain.Selection{}, meta, err
	}
	if len(paths) == 0 {
		return domain.Selection{}, meta, apperrors.ErrNoValidFiles
	}
	files, err := o.source.Describe(ctx, paths)
	if err != nil {
		return domain.Selection{}, meta, err
	}
	sel, err := o.allow.Filter(files)
	if err != nil {
		return sel, meta, err
	}
	if o.preflight != nil {
		accepted := sel.Accepted[:0]
		for _, f := range sel.Accepted {
			if err := o.preflight.Check(ctx, f); err != nil {
				sel.Rejected = append(sel.Rejected, fmt.Sprintf("%s: %v", f.Name, err))
				continue
			}
			accepted = append(accepted, f)
		}
		sel.Accepted = accepted
		if len(sel.Accepted) == 0 {
			return sel, meta, apperrors.ErrNoValidFiles
		}
	}
	return sel, meta, nil
}

// Run executes one prepared job to a terminal state, reporting every
// progress change through observe. The observer is called from the
// calling goroutine only. A second Run while a job is Uploading or
// Processing fails with ErrUploadActive and starts nothing.
func (o *Orchestrator) Run(ctx context.Context, files []domain.PendingFile, meta domain.UploadMetadata, observe func(domain.Snapshot)) error {
	o.mu.Lock()
	if o.active {
		o.mu.Unlock()
		return apperrors.ErrUploadActive
	}
	o.active = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.active = false
		o.mu.Unlock()
	}()

	if observe == nil {
		observe = func(domain.Snapshot) {}
	}

	ctx, cancel := context.WithTimeout(ctx, o.jobTimeout)
	defer cancel()

	job := domain.NewUploadJob(o.idGen.New(), files, meta, o.clock.Now())
	if err := job.StartUploading(); err != nil {
		return err
	}
	observe(job.Snapshot())

	result, err := o.transport.Submit(ctx, files, meta, func(fraction float64) {
		job.SetTransportProgress(fraction)
		observe(job.Snapshot())
	})
	if err != nil {
		err = o.mapDeadline(ctx, err)
		job.Fail(err)
		observe(job.Snapshot())
		return err
	}

	if result.RemoteJobID == "" {
		// Fire-and-forget backend: transport success is completion.
		if err := job.Complete(); err != nil {
			return err
		}
		observe(job.Snapshot())
		return nil
	}

	if err := job.BeginProcessing(result.RemoteJobID); err != nil {
		return err
	}
	observe(job.Snapshot())

	err = o.poller.Poll(ctx, result.RemoteJobID, func(u ingestout.PollUpdate) {
		job.SetServerProgress(u.ProgressPct, u.Completed, u.Total)
		observe(job.Snapshot())
	})
	if err != nil {
		err = o.mapDeadline(ctx, err)
		job.Fail(err)
		observe(job.Snapshot())
		return err
	}

	if err := job.Complete(); err != nil {
		return err
	}
	observe(job.Snapshot())
	return nil
}

// mapDeadline converts the orchestrator's own timeout into the
// domain's terminal timeout error; caller cancellation passes through.
func (o *Orchestrator) mapDeadline(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.ErrJobTimeout
	}
	return err
}
