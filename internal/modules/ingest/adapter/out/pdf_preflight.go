package out

import (
	"context"
	"fmt"

	"dochub/internal/modules/ingest/domain"
	ingestout "dochub/internal/modules/ingest/port/out"
	"rsc.io/pdf"
)

// PDFPreflight opens PDF selections locally before upload and rejects
// files the parser cannot read, catching corrupt documents before they
// spend a round trip on the ingestion pipeline. Non-PDF files pass
// through untouched.
type PDFPreflight struct{}

func NewPDFPreflight() ingestout.Preflight {
	return &PDFPreflight{}
}

func (p *PDFPreflight) Check(_ context.Context, file domain.PendingFile) (err error) {
	if file.Extension() != ".pdf" && file.MIMEType != "application/pdf" {
		return nil
	}
	defer func() {
		// rsc.io/pdf panics on some malformed inputs
		if r := recover(); r != nil {
			err = fmt.Errorf("unreadable pdf: %v", r)
		}
	}()
	doc, err := pdf.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	if doc.NumPage() == 0 {
		return fmt.Errorf("pdf has no pages")
	}
	return nil
}
