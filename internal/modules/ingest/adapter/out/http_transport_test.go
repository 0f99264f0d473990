package out_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"dochub/internal/modules/ingest/adapter/out"
	"dochub/internal/modules/ingest/domain"
	"dochub/internal/platform/rest"
)

func writeTempFile(t *testing.T, name, content string) domain.PendingFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return domain.PendingFile{Name: name, Path: path, SizeBytes: int64(len(content)), MIMEType: "application/pdf"}
}

func TestPolledTransportSubmit(t *testing.T) {
	t.Parallel()
	file := writeTempFile(t, "report.pdf", "%PDF-1.4 contents")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/organization-file/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("category_id"); got != "finance" {
			t.Errorf("category_id = %q", got)
		}
		if got := r.FormValue("tags"); got != `["q3","audit"]` {
			t.Errorf("tags = %q", got)
		}
		parts := r.MultipartForm.File["file"]
		if len(parts) != 1 || parts[0].Filename != "report.pdf" {
			t.Errorf("unexpected file parts: %+v", parts)
		}
		fmt.Fprint(w, `{"file_id": "remote-42"}`)
	}))
	defer srv.Close()

	transport := out.NewPolledTransport(rest.New(srv.URL, "tok", 5*time.Second))
	var fractions []float64
	result, err := transport.Submit(context.Background(), []domain.PendingFile{file},
		domain.UploadMetadata{CategoryID: "finance", Tags: []string{"q3", "audit"}},
		func(f float64) { fractions = append(fractions, f) })
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.RemoteJobID != "remote-42" {
		t.Fatalf("remote job id = %q", result.RemoteJobID)
	}
	if len(fractions) == 0 || fractions[len(fractions)-1] != 1 {
		t.Fatalf("progress must end at 1, got %v", fractions)
	}
}

func TestSyncTransportSendsAllFilesUnderOneField(t *testing.T) {
	t.Parallel()
	a := writeTempFile(t, "a.pdf", "first")
	b := writeTempFile(t, "b.pdf", "second")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/organization-file/local-drive/upload" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("tags"); got != "[]" {
			t.Errorf("empty tags should encode as [], got %q", got)
		}
		parts := r.MultipartForm.File["files"]
		if len(parts) != 2 {
			t.Errorf("expected 2 parts under files, got %d", len(parts))
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	transport := out.NewSyncTransport(rest.New(srv.URL, "", 5*time.Second))
	result, err := transport.Submit(context.Background(), []domain.PendingFile{a, b},
		domain.UploadMetadata{CategoryID: "finance"}, nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.RemoteJobID != "" {
		t.Fatalf("sync transport must not return a job id, got %q", result.RemoteJobID)
	}
}

func TestTransportMapsServerRejection(t *testing.T) {
	t.Parallel()
	file := writeTempFile(t, "report.pdf", "x")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		fmt.Fprint(w, `{"message": "file too large"}`)
	}))
	defer srv.Close()

	transport := out.NewPolledTransport(rest.New(srv.URL, "", 5*time.Second))
	_, err := transport.Submit(context.Background(), []domain.PendingFile{file}, domain.UploadMetadata{CategoryID: "x"}, nil)
	var transportErr *domain.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if transportErr.StatusCode != http.StatusRequestEntityTooLarge || transportErr.Message != "file too large" {
		t.Fatalf("unexpected transport error: %+v", transportErr)
	}
}

func TestTransportWrapsConnectionFailure(t *testing.T) {
	t.Parallel()
	file := writeTempFile(t, "report.pdf", "x")
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing is listening anymore

	transport := out.NewPolledTransport(rest.New(srv.URL, "", time.Second))
	_, err := transport.Submit(context.Background(), []domain.PendingFile{file}, domain.UploadMetadata{CategoryID: "x"}, nil)
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}
