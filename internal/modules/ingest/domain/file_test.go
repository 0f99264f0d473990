package domain_test

import (
	"errors"
	"testing"

	"dochub/internal/modules/ingest/domain"
	apperrors "dochub/internal/platform/errors"
)

func allowPDFAndText() domain.AllowList {
	return domain.NewAllowList(
		[]string{"application/pdf", "text/plain"},
		[]string{".pdf", ".txt", "md"},
	)
}

func TestAllowListAcceptsByMIMEOrExtension(t *testing.T) {
	t.Parallel()
	allow := allowPDFAndText()

	byMIME := domain.PendingFile{Name: "report.bin", MIMEType: "application/pdf"}
	if !allow.Accepts(byMIME) {
		t.Fatalf("file with allowed mime should be accepted regardless of extension")
	}
	byExt := domain.PendingFile{Name: "notes.MD", MIMEType: "application/octet-stream"}
	if !allow.Accepts(byExt) {
		t.Fatalf("file with allowed extension should be accepted regardless of mime")
	}
	withParams := domain.PendingFile{Name: "a.bin", MIMEType: "text/plain; charset=utf-8"}
	if !allow.Accepts(withParams) {
		t.Fatalf("mime parameters should not defeat the allow-list")
	}
	neither := domain.PendingFile{Name: "movie.avi", MIMEType: "video/x-msvideo"}
	if allow.Accepts(neither) {
		t.Fatalf("file matching neither list should be rejected")
	}
}

func TestFilterAllValid(t *testing.T) {
	t.Parallel()
	allow := allowPDFAndText()
	files := []domain.PendingFile{
		{Name: "a.pdf", MIMEType: "application/pdf"},
		{Name: "b.txt", MIMEType: "text/plain"},
	}
	sel, err := allow.Filter(files)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(sel.Accepted) != len(files) || len(sel.Rejected) != 0 {
		t.Fatalf("unexpected selection: %+v", sel)
	}
	if sel.PartialRejection() {
		t.Fatalf("no rejection signal expected")
	}
}

func TestFilterPartialRejection(t *testing.T) {
	t.Parallel()
	allow := allowPDFAndText()
	files := []domain.PendingFile{
		{Name: "a.pdf", MIMEType: "application/pdf"},
		{Name: "movie.avi", MIMEType: "video/x-msvideo"},
	}
	sel, err := allow.Filter(files)
	if err != nil {
		t.Fatalf("partial rejection is not a hard error: %v", err)
	}
	if len(sel.Accepted) != 1 || sel.Accepted[0].Name != "a.pdf" {
		t.Fatalf("unexpected accepted set: %+v", sel.Accepted)
	}
	if len(sel.Rejected) != 1 || sel.Rejected[0] != "movie.avi" {
		t.Fatalf("unexpected rejected names: %v", sel.Rejected)
	}
	if !sel.PartialRejection() {
		t.Fatalf("expected a partial rejection signal")
	}
}

func TestFilterAllRejected(t *testing.T) {
	t.Parallel()
	allow := allowPDFAndText()
	files := []domain.PendingFile{
		{Name: "movie.avi", MIMEType: "video/x-msvideo"},
	}
	sel, err := allow.Filter(files)
	if !errors.Is(err, apperrors.ErrNoValidFiles) {
		t.Fatalf("expected ErrNoValidFiles, got %v", err)
	}
	if len(sel.Accepted) != 0 {
		t.Fatalf("accepted set should be empty: %+v", sel.Accepted)
	}
}

func TestMetadataNormalizeDedupesTags(t *testing.T) {
	t.Parallel()
	meta := domain.UploadMetadata{
		CategoryID: " finance ",
		Tags:       []string{"q1", " ", "q1", "audit", "q1", ""},
	}
	got := meta.Normalize()
	if got.CategoryID != "finance" {
		t.Fatalf("category not trimmed: %q", got.CategoryID)
	}
	want := []string{"q1", "audit"}
	if len(got.Tags) != len(want) {
		t.Fatalf("unexpected tags: %v", got.Tags)
	}
	for i := range want {
		if got.Tags[i] != want[i] {
			t.Fatalf("tag order not preserved: %v", got.Tags)
		}
	}
}

func TestMetadataValidateRequiresCategory(t *testing.T) {
	t.Parallel()
	if err := (domain.UploadMetadata{CategoryID: "finance"}).Validate(); err != nil {
		t.Fatalf("valid metadata rejected: %v", err)
	}
	if err := (domain.UploadMetadata{CategoryID: "  "}).Validate(); !errors.Is(err, apperrors.ErrMissingCategory) {
		t.Fatalf("expected ErrMissingCategory, got %v", err)
	}
}
