package dto

type UploadInput struct {
	Paths      []string
	CategoryID string
	Tags       []string
}

// ProgressUpdate is the presenter tuple: re-rendered on every change.
type ProgressUpdate struct {
	Phase       string
	ProgressPct float64
	Completed   int
	Total       int
	Filename    string
	SizeBytes   int64
}

type UploadOutput struct {
	Uploaded int
	Rejected []string
	Warnings []string
}
