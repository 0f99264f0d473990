package dto

import "time"

type ConnectorInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
}

// CheckResult is one row of `connector check` output.
type CheckResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}

type RemoteFileOutput struct {
	ID         string
	Name       string
	SizeBytes  int64
	MIMEType   string
	ModifiedAt time.Time
}

type FetchInput struct {
	Connector string
	RemoteID  string
	// DestDir is the staging directory for the local copy.
	DestDir string
}

type FetchOutput struct {
	LocalPath string
	Name      string
	SizeBytes int64
}
