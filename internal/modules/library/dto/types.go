package dto

import "time"

type ListFilesInput struct {
	// ForceRefresh bypasses the local cache and refetches the
	// backend listing even when the cache is considered fresh.
	ForceRefresh bool
}

type FileOutput struct {
	ID         string
	Filename   string
	CategoryID string
	SizeBytes  int64
	Stage      string
	CreatedAt  time.Time
}

type ListFilesOutput struct {
	Files []FileOutput
	// Stale is set when the backend was unreachable and the listing
	// came from the local cache.
	Stale bool
}

// StatusEventInput is a partial file update from the notify channel.
type StatusEventInput struct {
	FileID     string
	Filename   string
	CategoryID string
	SizeBytes  int64
	Stage      string
	CreatedAt  time.Time
}
