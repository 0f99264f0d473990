package domain

import (
	"errors"
	"fmt"
	"time"
)

// Phase is the orchestrator's stage for the active upload job.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseUploading  Phase = "uploading"
	PhaseProcessing Phase = "processing"
	PhaseCompleted  Phase = "completed"
	PhaseFailed     Phase = "failed"
)

func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// CanTransition encodes the legal phase machine:
// Idle -> Uploading -> Processing -> {Completed, Failed} -> Idle,
// with Uploading -> Completed for fire-and-forget backends and any
// non-terminal phase able to fail.
func (p Phase) CanTransition(to Phase) bool {
	switch p {
	case PhaseIdle:
		return to == PhaseUploading
	case PhaseUploading:
		return to == PhaseProcessing || to == PhaseCompleted || to == PhaseFailed
	case PhaseProcessing:
		return to == PhaseCompleted || to == PhaseFailed
	case PhaseCompleted, PhaseFailed:
		return to == PhaseIdle
	default:
		return false
	}
}

// TransportError is a non-2xx response from the upload endpoint.
type TransportError struct {
	StatusCode int
	Message    string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upload rejected: status %d: %s", e.StatusCode, e.Message)
}

// PollError is a failed status poll. The first one is terminal for the
// job; the poller never retries silently.
type PollError struct {
	Message string
}

func (e *PollError) Error() string {
	return fmt.Sprintf("status poll failed: %s", e.Message)
}

var (
	ErrNetwork    = errors.New("network failure")
	ErrJobTimeout = errors.New("upload job timed out")
)

// UploadJob tracks one submission from transport start to terminal
// state. Transport progress maps to the 0-50 band of combined
// progress, server-side processing to 50-100.
type UploadJob struct {
	ID           string
	Files        []PendingFile
	Metadata     UploadMetadata
	Phase        Phase
	RemoteJobID  string
	TransportPct float64
	ServerPct    float64
	Completed    int
	Total        int
	Err          error
	StartedAt    time.Time

	lastCombined float64
}

func NewUploadJob(id string, files []PendingFile, meta UploadMetadata, startedAt time.Time) *UploadJob {
	return &UploadJob{
		ID:        id,
		Files:     files,
		Metadata:  meta,
		Phase:     PhaseIdle,
		Total:     len(files),
		StartedAt: startedAt,
	}
}

func (j *UploadJob) transition(to Phase) error {
	if !j.Phase.CanTransition(to) {
		return fmt.Errorf("illegal phase transition %s -> %s", j.Phase, to)
	}
	j.Phase = to
	return nil
}

func (j *UploadJob) StartUploading() error {
	return j.transition(PhaseUploading)
}

// BeginProcessing records the server-assigned job id and moves to the
// polling phase.
func (j *UploadJob) BeginProcessing(remoteJobID string) error {
	if remoteJobID == "" {
		return fmt.Errorf("remote job id is required for processing")
	}
	if err := j.transition(PhaseProcessing); err != nil {
		return err
	}
	j.RemoteJobID = remoteJobID
	return nil
}

func (j *UploadJob) Complete() error {
	return j.transition(PhaseCompleted)
}

func (j *UploadJob) Fail(err error) {
	// Failure is legal from any non-terminal phase; a failed job keeps
	// its error for display.
	if !j.Phase.Terminal() {
		j.Phase = PhaseFailed
	}
	j.Err = err
}

// SetTransportProgress accepts a fraction in [0, 1] from the transport.
func (j *UploadJob) SetTransportProgress(fraction float64) {
	j.TransportPct = clampPct(fraction * 100)
}

// SetServerProgress accepts the server-reported percentage plus
// optional completed/total counts from a poll response.
func (j *UploadJob) SetServerProgress(pct float64, completed, total int) {
	j.ServerPct = clampPct(pct)
	if total > 0 {
		j.Completed = completed
		j.Total = total
	}
}

// CombinedProgress is monotonically non-decreasing over the job's
// lifetime: bursty or out-of-order callbacks never move it backwards.
// It reaches exactly 100 only on completion.
func (j *UploadJob) CombinedProgress() float64 {
	var pct float64
	switch j.Phase {
	case PhaseIdle:
		pct = 0
	case PhaseUploading:
		pct = 0.5 * j.TransportPct
	case PhaseProcessing:
		pct = 50 + 0.5*j.ServerPct
	case PhaseCompleted:
		pct = 100
	case PhaseFailed:
		pct = j.lastCombined
	}
	if pct > 100 {
		pct = 100
	}
	if pct < j.lastCombined {
		pct = j.lastCombined
	}
	if j.Phase != PhaseCompleted && pct >= 100 {
		pct = 99
	}
	j.lastCombined = pct
	return pct
}

// TotalSizeBytes sums the sizes of all files in the job.
func (j *UploadJob) TotalSizeBytes() int64 {
	var total int64
	for _, f := range j.Files {
		total += f.SizeBytes
	}
	return total
}

// DisplayName identifies the job in a progress presenter.
func (j *UploadJob) DisplayName() string {
	if len(j.Files) == 0 {
		return ""
	}
	if len(j.Files) == 1 {
		return j.Files[0].Name
	}
	return fmt.Sprintf("%s (+%d more)", j.Files[0].Name, len(j.Files)-1)
}

// Snapshot is the immutable tuple a progress presenter renders.
type Snapshot struct {
	Phase       Phase
	ProgressPct float64
	Completed   int
	Total       int
	Filename    string
	SizeBytes   int64
	Err         error
}

func (j *UploadJob) Snapshot() Snapshot {
	return Snapshot{
		Phase:       j.Phase,
		ProgressPct: j.CombinedProgress(),
		Completed:   j.Completed,
		Total:       j.Total,
		Filename:    j.DisplayName(),
		SizeBytes:   j.TotalSizeBytes(),
		Err:         j.Err,
	}
}

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
