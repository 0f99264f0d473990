package usecase

import (
	"context"

	"dochub/internal/modules/connector/dto"
	connectorin "dochub/internal/modules/connector/port/in"
	"dochub/internal/modules/connector/service"
)

type Interactor struct {
	svc *service.ConnectorService
}

func NewInteractor(svc *service.ConnectorService) connectorin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ConnectorInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Check(ctx context.Context) ([]dto.CheckResult, error) {
	return i.svc.Check(ctx)
}

func (i *Interactor) ListFiles(ctx context.Context, connector string) ([]dto.RemoteFileOutput, error) {
	files, err := i.svc.ListFiles(ctx, connector)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RemoteFileOutput, 0, len(files))
	for _, f := range files {
		out = append(out, dto.RemoteFileOutput{
			ID:         f.ID,
			Name:       f.Name,
			SizeBytes:  f.SizeBytes,
			MIMEType:   f.MIMEType,
			ModifiedAt: f.ModifiedAt,
		})
	}
	return out, nil
}

func (i *Interactor) Fetch(ctx context.Context, input dto.FetchInput) (dto.FetchOutput, error) {
	result, err := i.svc.Fetch(ctx, input.Connector, input.RemoteID, input.DestDir)
	if err != nil {
		return dto.FetchOutput{}, err
	}
	return dto.FetchOutput{LocalPath: result.LocalPath, Name: result.Name, SizeBytes: result.SizeBytes}, nil
}
