package usecase

import (
	"context"

	"dochub/internal/modules/ingest/domain"
	"dochub/internal/modules/ingest/dto"
	ingestin "dochub/internal/modules/ingest/port/in"
	"dochub/internal/modules/ingest/service"
	libraryin "dochub/internal/modules/library/port/in"
)

type Interactor struct {
	orch    *service.Orchestrator
	library libraryin.Usecase
}

func NewInteractor(orch *service.Orchestrator, library libraryin.Usecase) ingestin.Usecase {
	return &Interactor{orch: orch, library: library}
}

func (i *Interactor) Upload(ctx context.Context, input dto.UploadInput, observe ingestin.ProgressFunc) (dto.UploadOutput, error) {
	meta := domain.UploadMetadata{CategoryID: input.CategoryID, Tags: input.Tags}
	sel, meta, err := i.orch.Prepare(ctx, input.Paths, meta)
	if err != nil {
		return dto.UploadOutput{Rejected: sel.Rejected}, err
	}

	var wrapped func(domain.Snapshot)
	if observe != nil {
		wrapped = func(s domain.Snapshot) {
			observe(toProgressUpdate(s))
		}
	}
	if err := i.orch.Run(ctx, sel.Accepted, meta, wrapped); err != nil {
		return dto.UploadOutput{Rejected: sel.Rejected}, err
	}

	// the backend catalog gained entries; refetch once, best effort
	if i.library != nil {
		_ = i.library.Refresh(ctx)
	}

	out := dto.UploadOutput{
		Uploaded: len(sel.Accepted),
		Rejected: sel.Rejected,
	}
	if sel.PartialRejection() {
		out.Warnings = append(out.Warnings, "some files were skipped")
	}
	return out, nil
}

func toProgressUpdate(s domain.Snapshot) dto.ProgressUpdate {
	return dto.ProgressUpdate{
		Phase:       string(s.Phase),
		ProgressPct: s.ProgressPct,
		Completed:   s.Completed,
		Total:       s.Total,
		Filename:    s.Filename,
		SizeBytes:   s.SizeBytes,
	}
}
