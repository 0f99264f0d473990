package domain

import (
	"fmt"
	"strings"
	"time"
)

// IngestionStage is the backend's lifecycle marker for an ingested
// file, as reported by the listing endpoint and the notify channel.
type IngestionStage string

const (
	StageUploaded   IngestionStage = "uploaded"
	StageProcessing IngestionStage = "processing"
	StageCompleted  IngestionStage = "completed"
	StageFailed     IngestionStage = "failed"
)

// ParseStage normalizes a backend stage string. Unknown values are
// kept as-is so new backend stages render instead of erroring.
func ParseStage(raw string) IngestionStage {
	return IngestionStage(strings.ToLower(strings.TrimSpace(raw)))
}

func (s IngestionStage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// IngestedFile mirrors one backend catalog entry. The client never
// owns this data; the backend listing is authoritative and the local
// copy is a cache.
type IngestedFile struct {
	ID         string
	Filename   string
	CategoryID string
	SizeBytes  int64
	Stage      IngestionStage
	CreatedAt  time.Time
}

func (f IngestedFile) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("ingested file is missing an id")
	}
	return nil
}

// Merge applies a partial status update onto the cached entry. Zero
// fields in the update leave the current value untouched, mirroring
// how the notify channel sends only the fields that changed.
func (f IngestedFile) Merge(update IngestedFile) IngestedFile {
	if update.Filename != "" {
		f.Filename = update.Filename
	}
	if update.CategoryID != "" {
		f.CategoryID = update.CategoryID
	}
	if update.SizeBytes > 0 {
		f.SizeBytes = update.SizeBytes
	}
	if update.Stage != "" {
		f.Stage = update.Stage
	}
	if !update.CreatedAt.IsZero() {
		f.CreatedAt = update.CreatedAt
	}
	return f
}
