package out

import (
	"context"
	"fmt"
	"time"

	"dochub/internal/modules/library/domain"
	libraryout "dochub/internal/modules/library/port/out"
	"dochub/internal/platform/rest"
)

// HTTPFileAPI talks to the backend's organization-file endpoints.
type HTTPFileAPI struct {
	api *rest.Client
}

func NewHTTPFileAPI(api *rest.Client) libraryout.FileAPI {
	return &HTTPFileAPI{api: api}
}

type filePayload struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	CategoryID   string `json:"category_id"`
	FileSize     int64  `json:"file_size"`
	CurrentStage string `json:"current_stage"`
	CreatedAt    string `json:"created_at"`
}

func (a *HTTPFileAPI) ListFiles(ctx context.Context) ([]domain.IngestedFile, error) {
	payload := struct {
		Data []filePayload `json:"data"`
	}{}
	if err := a.api.GetJSON(ctx, "/organization-file/all", &payload); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	files := make([]domain.IngestedFile, 0, len(payload.Data))
	for _, p := range payload.Data {
		files = append(files, p.toDomain())
	}
	return files, nil
}

func (a *HTTPFileAPI) DeleteFile(ctx context.Context, id string) error {
	if err := a.api.Delete(ctx, "/organization-file/"+id); err != nil {
		return fmt.Errorf("delete file %s: %w", id, err)
	}
	return nil
}

func (p filePayload) toDomain() domain.IngestedFile {
	createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		// the backend occasionally omits the timezone suffix
		createdAt, _ = time.Parse("2006-01-02T15:04:05", p.CreatedAt)
	}
	return domain.IngestedFile{
		ID:         p.ID,
		Filename:   p.Filename,
		CategoryID: p.CategoryID,
		SizeBytes:  p.FileSize,
		Stage:      domain.ParseStage(p.CurrentStage),
		CreatedAt:  createdAt,
	}
}
