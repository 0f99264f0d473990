package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dochub/internal/modules/connector/domain"
	"dochub/internal/modules/connector/dto"
	connectorout "dochub/internal/modules/connector/port/out"
)

// ConnectorService gates every connector launch behind manifest
// validation and a binary checksum.
type ConnectorService struct {
	store connectorout.ManifestStore
	host  connectorout.Host
}

func NewConnectorService(store connectorout.ManifestStore, host connectorout.Host) *ConnectorService {
	return &ConnectorService{store: store, host: host}
}

func (s *ConnectorService) List(ctx context.Context) ([]dto.ConnectorInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConnectorInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.ConnectorInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary})
	}
	return out, nil
}

func (s *ConnectorService) Check(ctx context.Context) ([]dto.CheckResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.CheckResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.CheckResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *ConnectorService) ListFiles(ctx context.Context, connector string) ([]domain.RemoteFile, error) {
	manifest, err := s.getRunnableManifest(ctx, connector)
	if err != nil {
		return nil, err
	}
	return s.host.ListFiles(ctx, manifest)
}

func (s *ConnectorService) Fetch(ctx context.Context, connector, remoteID, destDir string) (domain.FetchResult, error) {
	if remoteID == "" {
		return domain.FetchResult{}, fmt.Errorf("remote file id is required")
	}
	manifest, err := s.getRunnableManifest(ctx, connector)
	if err != nil {
		return domain.FetchResult{}, err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return domain.FetchResult{}, fmt.Errorf("create staging dir: %w", err)
	}
	result, err := s.host.FetchFile(ctx, manifest, remoteID, destDir)
	if err != nil {
		return domain.FetchResult{}, err
	}
	if result.LocalPath == "" {
		return domain.FetchResult{}, fmt.Errorf("connector %s returned no local path", connector)
	}
	return result, nil
}

func (s *ConnectorService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate connector name: %s", manifest.Name)
		}
		seen[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *ConnectorService) getRunnableManifest(ctx context.Context, name string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == name {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("connector %q not found", name)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrConnectorDisabled, name)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrConnectorTimeout, name)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read connector binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
