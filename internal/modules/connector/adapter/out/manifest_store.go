package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dochub/internal/modules/connector/domain"
	connectorout "dochub/internal/modules/connector/port/out"

	"gopkg.in/yaml.v3"
)

// YAMLManifestStore reads one manifest per *.yaml file in the
// connector directory. Relative binary paths resolve against the
// directory, so a connector can ship next to its manifest.
type YAMLManifestStore struct {
	dir string
}

func NewYAMLManifestStore(dir string) connectorout.ManifestStore {
	return &YAMLManifestStore{dir: dir}
}

func (s *YAMLManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read connector dir: %w", err)
	}
	manifests := make([]domain.Manifest, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read connector manifest %s: %w", entry.Name(), err)
		}
		var manifest domain.Manifest
		decoder := yaml.NewDecoder(strings.NewReader(string(raw)))
		decoder.KnownFields(true)
		if err := decoder.Decode(&manifest); err != nil {
			return nil, fmt.Errorf("decode connector manifest %s: %w", entry.Name(), err)
		}
		if manifest.Binary != "" && !filepath.IsAbs(manifest.Binary) {
			manifest.Binary = filepath.Clean(filepath.Join(s.dir, manifest.Binary))
		}
		manifests = append(manifests, manifest)
	}
	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Name < manifests[j].Name })
	return manifests, nil
}
