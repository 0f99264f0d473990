package domain

import (
	"fmt"
	"strings"
	"time"
)

// DocumentEvent is one document_notify frame: a partial file record
// the backend pushes while its pipeline advances a document.
type DocumentEvent struct {
	FileID     string
	Filename   string
	CategoryID string
	SizeBytes  int64
	Stage      string
	CreatedAt  time.Time
}

func (e DocumentEvent) Validate() error {
	if strings.TrimSpace(e.FileID) == "" {
		return fmt.Errorf("document event is missing a file id")
	}
	return nil
}
