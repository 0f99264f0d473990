package in

import (
	"context"

	"dochub/internal/modules/library/dto"
	libraryin "dochub/internal/modules/library/port/in"
)

type CLIHandler struct {
	usecase libraryin.Usecase
}

func NewCLIHandler(usecase libraryin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListFiles(ctx context.Context, forceRefresh bool) (dto.ListFilesOutput, error) {
	return h.usecase.ListFiles(ctx, dto.ListFilesInput{ForceRefresh: forceRefresh})
}

func (h CLIHandler) DeleteFile(ctx context.Context, id string) error {
	return h.usecase.DeleteFile(ctx, id)
}

func (h CLIHandler) Refresh(ctx context.Context) error {
	return h.usecase.Refresh(ctx)
}
