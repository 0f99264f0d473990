package in

import (
	"context"

	"dochub/internal/modules/ingest/dto"
	ingestin "dochub/internal/modules/ingest/port/in"
)

type CLIHandler struct {
	usecase ingestin.Usecase
}

func NewCLIHandler(usecase ingestin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Upload(ctx context.Context, paths []string, categoryID string, tags []string, observe ingestin.ProgressFunc) (dto.UploadOutput, error) {
	return h.usecase.Upload(ctx, dto.UploadInput{
		Paths:      paths,
		CategoryID: categoryID,
		Tags:       tags,
	}, observe)
}
