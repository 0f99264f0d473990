package in

import (
	"context"

	"dochub/internal/modules/ingest/dto"
	ingestin "dochub/internal/modules/ingest/port/in"
)

// TUIHandler adapts the upload usecase for the uploads view, which
// declares its observer as a plain func type.
type TUIHandler struct {
	usecase ingestin.Usecase
}

func NewTUIHandler(usecase ingestin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Upload(ctx context.Context, paths []string, categoryID string, tags []string, observe func(dto.ProgressUpdate)) (dto.UploadOutput, error) {
	return h.usecase.Upload(ctx, dto.UploadInput{
		Paths:      paths,
		CategoryID: categoryID,
		Tags:       tags,
	}, ingestin.ProgressFunc(observe))
}
