package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"dochub/internal/modules/ingest/domain"
	ingestout "dochub/internal/modules/ingest/port/out"
	"dochub/internal/platform/rest"
)

const (
	polledUploadPath = "/organization-file/upload"
	syncUploadPath   = "/organization-file/local-drive/upload"
)

// HTTPTransport streams one multipart request to the ingestion
// endpoint. The polled strategy posts to the job endpoint and returns
// the server-assigned id for status tracking; the sync strategy posts
// to the fire-and-forget endpoint and returns no id.
type HTTPTransport struct {
	api          *rest.Client
	http         *http.Client
	path         string
	fileField    string
	returnsJobID bool
}

// NewPolledTransport implements the upload-then-poll backend contract.
func NewPolledTransport(api *rest.Client) ingestout.Transport {
	return &HTTPTransport{api: api, http: &http.Client{}, path: polledUploadPath, fileField: "file", returnsJobID: true}
}

// NewSyncTransport implements the synchronous multi-file contract.
func NewSyncTransport(api *rest.Client) ingestout.Transport {
	return &HTTPTransport{api: api, http: &http.Client{}, path: syncUploadPath, fileField: "files", returnsJobID: false}
}

func (t *HTTPTransport) Submit(ctx context.Context, files []domain.PendingFile, meta domain.UploadMetadata, onProgress func(float64)) (ingestout.SubmitResult, error) {
	target, err := t.api.URL(t.path)
	if err != nil {
		return ingestout.SubmitResult{}, err
	}
	if onProgress == nil {
		onProgress = func(float64) {}
	}

	var total int64
	for _, f := range files {
		total += f.SizeBytes
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	counter := &progressCounter{total: total, onProgress: onProgress}

	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		pw.CloseWithError(t.writeBody(writer, files, meta, counter))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		<-writeDone
		return ingestout.SubmitResult{}, fmt.Errorf("new upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	t.api.Authorize(req)

	resp, err := t.http.Do(req)
	if err != nil {
		_ = pr.CloseWithError(err)
		<-writeDone
		return ingestout.SubmitResult{}, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	<-writeDone
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr *rest.APIError
		if errors.As(rest.DecodeError(resp), &apiErr) {
			return ingestout.SubmitResult{}, &domain.TransportError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
		}
		return ingestout.SubmitResult{}, &domain.TransportError{StatusCode: resp.StatusCode}
	}

	counter.finish()

	if !t.returnsJobID {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ingestout.SubmitResult{}, nil
	}

	payload := struct {
		FileID string `json:"file_id"`
		Data   struct {
			FileID string `json:"file_id"`
		} `json:"data"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ingestout.SubmitResult{}, fmt.Errorf("decode upload response: %w", err)
	}
	jobID := payload.FileID
	if jobID == "" {
		jobID = payload.Data.FileID
	}
	return ingestout.SubmitResult{RemoteJobID: jobID}, nil
}

// writeBody emits scalar fields first, then one part per file under
// the shared field name. Tags are a JSON array: the backend's
// canonical encoding.
func (t *HTTPTransport) writeBody(writer *multipart.Writer, files []domain.PendingFile, meta domain.UploadMetadata, counter *progressCounter) error {
	if err := writer.WriteField("category_id", meta.CategoryID); err != nil {
		return fmt.Errorf("write category field: %w", err)
	}
	tags := []byte("[]")
	if len(meta.Tags) > 0 {
		var err error
		if tags, err = json.Marshal(meta.Tags); err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}
	}
	if err := writer.WriteField("tags", string(tags)); err != nil {
		return fmt.Errorf("write tags field: %w", err)
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(t.fileField, f.Name)
		if err != nil {
			return fmt.Errorf("create part for %s: %w", f.Name, err)
		}
		src, err := os.Open(f.Path)
		if err != nil {
			return fmt.Errorf("open %s: %w", f.Path, err)
		}
		_, err = io.Copy(io.MultiWriter(part, counter), src)
		_ = src.Close()
		if err != nil {
			return fmt.Errorf("stream %s: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}
	return nil
}

// progressCounter reports file-content bytes sent as a fraction of the
// file-content total, clamped to [0, 1]. Multipart framing overhead is
// excluded on both sides of the division.
type progressCounter struct {
	total      int64
	sent       int64
	onProgress func(float64)
}

func (c *progressCounter) Write(p []byte) (int, error) {
	c.sent += int64(len(p))
	if c.total > 0 {
		fraction := float64(c.sent) / float64(c.total)
		if fraction > 1 {
			fraction = 1
		}
		c.onProgress(fraction)
	}
	return len(p), nil
}

func (c *progressCounter) finish() {
	c.onProgress(1)
}
