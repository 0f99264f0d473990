package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrConnectorDisabled  = errors.New("connector is disabled")
	ErrChecksumMismatch   = errors.New("connector checksum mismatch")
	ErrConnectorTimeout   = errors.New("connector timeout")
	ErrRemoteFileNotFound = errors.New("remote file not found")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest declares one drive-source connector: an external binary the
// host runs as a plugin. The checksum gates every launch.
type Manifest struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Binary  string `yaml:"binary"`
	SHA256  string `yaml:"sha256"`
	Enabled bool   `yaml:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("connector name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("connector version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("connector binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("connector sha256 must be lowercase 64-char hex")
	}
	return nil
}

// Metadata is what the running connector reports about itself.
type Metadata struct {
	Name    string
	Version string
	Source  string
}

// RemoteFile is one entry in a connector's remote listing.
type RemoteFile struct {
	ID         string
	Name       string
	SizeBytes  int64
	MIMEType   string
	ModifiedAt time.Time
}

// FetchResult points at the staged local copy of a remote file, ready
// for the regular upload flow.
type FetchResult struct {
	LocalPath string
	Name      string
	SizeBytes int64
}
