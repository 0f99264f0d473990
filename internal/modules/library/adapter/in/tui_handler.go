package in

import (
	"context"

	"dochub/internal/modules/library/dto"
	libraryin "dochub/internal/modules/library/port/in"
)

// TUIHandler exposes the catalog to the TUI with dto inputs intact, so
// the view layer can carry the force-refresh flag through.
type TUIHandler struct {
	usecase libraryin.Usecase
}

func NewTUIHandler(usecase libraryin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) ListFiles(ctx context.Context, input dto.ListFilesInput) (dto.ListFilesOutput, error) {
	return h.usecase.ListFiles(ctx, input)
}

func (h TUIHandler) DeleteFile(ctx context.Context, id string) error {
	return h.usecase.DeleteFile(ctx, id)
}
