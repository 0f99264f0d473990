package usecase

import (
	"context"

	"dochub/internal/modules/library/domain"
	"dochub/internal/modules/library/dto"
	libraryin "dochub/internal/modules/library/port/in"
	"dochub/internal/modules/library/service"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) libraryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListFiles(ctx context.Context, input dto.ListFilesInput) (dto.ListFilesOutput, error) {
	files, stale, err := i.svc.List(ctx, input.ForceRefresh)
	if err != nil {
		return dto.ListFilesOutput{}, err
	}
	out := dto.ListFilesOutput{Files: make([]dto.FileOutput, 0, len(files)), Stale: stale}
	for _, f := range files {
		out.Files = append(out.Files, dto.FileOutput{
			ID:         f.ID,
			Filename:   f.Filename,
			CategoryID: f.CategoryID,
			SizeBytes:  f.SizeBytes,
			Stage:      string(f.Stage),
			CreatedAt:  f.CreatedAt,
		})
	}
	return out, nil
}

func (i *Interactor) DeleteFile(ctx context.Context, id string) error {
	return i.svc.Delete(ctx, id)
}

func (i *Interactor) Refresh(ctx context.Context) error {
	return i.svc.Refresh(ctx)
}

func (i *Interactor) ApplyStatus(ctx context.Context, event dto.StatusEventInput) error {
	return i.svc.ApplyStatus(ctx, domain.IngestedFile{
		ID:         event.FileID,
		Filename:   event.Filename,
		CategoryID: event.CategoryID,
		SizeBytes:  event.SizeBytes,
		Stage:      domain.ParseStage(event.Stage),
		CreatedAt:  event.CreatedAt,
	})
}
