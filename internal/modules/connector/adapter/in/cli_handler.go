package in

import (
	"context"

	"dochub/internal/modules/connector/dto"
	connectorin "dochub/internal/modules/connector/port/in"
)

type CLIHandler struct {
	usecase connectorin.Usecase
}

func NewCLIHandler(usecase connectorin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ConnectorInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Check(ctx context.Context) ([]dto.CheckResult, error) {
	return h.usecase.Check(ctx)
}

func (h CLIHandler) ListFiles(ctx context.Context, connector string) ([]dto.RemoteFileOutput, error) {
	return h.usecase.ListFiles(ctx, connector)
}

func (h CLIHandler) Fetch(ctx context.Context, connector, remoteID, destDir string) (dto.FetchOutput, error) {
	return h.usecase.Fetch(ctx, dto.FetchInput{Connector: connector, RemoteID: remoteID, DestDir: destDir})
}
