package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dochub/internal/modules/connector/domain"
	"dochub/internal/modules/connector/service"
)

type fakeStore struct {
	manifests []domain.Manifest
	err       error
}

func (f *fakeStore) Load(ctx context.Context) ([]domain.Manifest, error) {
	return f.manifests, f.err
}

type fakeHost struct {
	lifecycleErr error
	files        []domain.RemoteFile
	fetched      domain.FetchResult
	fetchErr     error

	lifecycleCalls int
	listCalls      int
	fetchCalls     int
}

func (f *fakeHost) CheckLifecycle(ctx context.Context, m domain.Manifest) error {
	f.lifecycleCalls++
	return f.lifecycleErr
}

func (f *fakeHost) GetMetadata(ctx context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version}, nil
}

func (f *fakeHost) ListFiles(ctx context.Context, m domain.Manifest) ([]domain.RemoteFile, error) {
	f.listCalls++
	return f.files, nil
}

func (f *fakeHost) FetchFile(ctx context.Context, m domain.Manifest, remoteID, destDir string) (domain.FetchResult, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return domain.FetchResult{}, f.fetchErr
	}
	return f.fetched, nil
}

// writeBinary drops a fake connector binary on disk and returns its
// path together with the hex sha256 the manifest should carry.
func writeBinary(t *testing.T, content string) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "connector")
	if err := os.WriteFile(path, []byte(content), 0o700); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	hash := sha256.Sum256([]byte(content))
	return path, hex.EncodeToString(hash[:])
}

func TestListFilesPassesChecksumGate(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, "#!/bin/sh\nexit 0\n")
	store := &fakeStore{manifests: []domain.Manifest{{
		Name: "localdir", Version: "1.0.0", Binary: binary, SHA256: sum, Enabled: true,
	}}}
	host := &fakeHost{files: []domain.RemoteFile{{ID: "f1", Name: "report.pdf"}}}

	svc := service.NewConnectorService(store, host)
	files, err := svc.ListFiles(context.Background(), "localdir")
	if err != nil {
		t.Fatalf("list files: %v", err)
	}
	if len(files) != 1 || files[0].ID != "f1" {
		t.Fatalf("unexpected files: %+v", files)
	}
	if host.lifecycleCalls != 1 {
		t.Fatalf("lifecycle must be probed before launch, got %d calls", host.lifecycleCalls)
	}
}

func TestListFilesRejectsTamperedBinary(t *testing.T) {
	t.Parallel()
	binary, _ := writeBinary(t, "tampered contents")
	store := &fakeStore{manifests: []domain.Manifest{{
		Name: "localdir", Version: "1.0.0", Binary: binary,
		SHA256:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Enabled: true,
	}}}
	host := &fakeHost{}

	svc := service.NewConnectorService(store, host)
	if _, err := svc.ListFiles(context.Background(), "localdir"); !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
	if host.listCalls != 0 {
		t.Fatal("tampered connector must never be launched")
	}
}

func TestListFilesDisabledConnector(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, "disabled")
	store := &fakeStore{manifests: []domain.Manifest{{
		Name: "paused", Version: "1.0.0", Binary: binary, SHA256: sum, Enabled: false,
	}}}

	svc := service.NewConnectorService(store, &fakeHost{})
	if _, err := svc.ListFiles(context.Background(), "paused"); !errors.Is(err, domain.ErrConnectorDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, "dup")
	manifest := domain.Manifest{Name: "twice", Version: "1.0.0", Binary: binary, SHA256: sum, Enabled: true}
	store := &fakeStore{manifests: []domain.Manifest{manifest, manifest}}

	svc := service.NewConnectorService(store, &fakeHost{})
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatal("duplicate connector names must be rejected")
	}
}

func TestFetchRequiresRemoteIDAndLocalPath(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, "fetcher")
	store := &fakeStore{manifests: []domain.Manifest{{
		Name: "localdir", Version: "1.0.0", Binary: binary, SHA256: sum, Enabled: true,
	}}}
	host := &fakeHost{}

	svc := service.NewConnectorService(store, host)
	if _, err := svc.Fetch(context.Background(), "localdir", "", t.TempDir()); err == nil {
		t.Fatal("empty remote id must be rejected")
	}
	if host.fetchCalls != 0 {
		t.Fatal("invalid fetch must not reach the connector")
	}

	// A connector replying without a local path is a protocol violation.
	if _, err := svc.Fetch(context.Background(), "localdir", "f1", t.TempDir()); err == nil {
		t.Fatal("empty local path must be rejected")
	}
}

func TestFetchCreatesDestDir(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, "fetcher")
	store := &fakeStore{manifests: []domain.Manifest{{
		Name: "localdir", Version: "1.0.0", Binary: binary, SHA256: sum, Enabled: true,
	}}}
	dest := filepath.Join(t.TempDir(), "staging", "nested")
	host := &fakeHost{fetched: domain.FetchResult{LocalPath: filepath.Join(dest, "report.pdf"), Name: "report.pdf", SizeBytes: 9}}

	svc := service.NewConnectorService(store, host)
	result, err := svc.Fetch(context.Background(), "localdir", "f1", dest)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result.Name != "report.pdf" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("staging dir must exist after fetch: %v", err)
	}
}

func TestLifecycleTimeoutMapsToConnectorTimeout(t *testing.T) {
	t.Parallel()
	binary, sum := writeBinary(t, "slow")
	store := &fakeStore{manifests: []domain.Manifest{{
		Name: "slow", Version: "1.0.0", Binary: binary, SHA256: sum, Enabled: true,
	}}}
	host := &fakeHost{lifecycleErr: context.DeadlineExceeded}

	svc := service.NewConnectorService(store, host)
	if _, err := svc.ListFiles(context.Background(), "slow"); !errors.Is(err, domain.ErrConnectorTimeout) {
		t.Fatalf("expected connector timeout, got %v", err)
	}
}

func TestCheckReportsPerConnector(t *testing.T) {
	t.Parallel()
	goodBinary, goodSum := writeBinary(t, "good")
	badBinary, _ := writeBinary(t, "bad")
	store := &fakeStore{manifests: []domain.Manifest{
		{Name: "good", Version: "1.0.0", Binary: goodBinary, SHA256: goodSum, Enabled: true},
		{Name: "tampered", Version: "1.0.0", Binary: badBinary,
			SHA256: "dddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddd", Enabled: true},
		{Name: "missing", Version: "1.0.0", Binary: filepath.Join(t.TempDir(), "absent"),
			SHA256: "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee", Enabled: true},
	}}

	svc := service.NewConnectorService(store, &fakeHost{})
	results, err := svc.Check(context.Background())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	byName := map[string]int{}
	for i, r := range results {
		byName[r.Name] = i
	}
	good := results[byName["good"]]
	if !good.BinaryReachable || !good.ChecksumValid || !good.LifecycleOK || good.Error != "" {
		t.Fatalf("healthy connector misreported: %+v", good)
	}
	tampered := results[byName["tampered"]]
	if !tampered.BinaryReachable || tampered.ChecksumValid || tampered.Error == "" {
		t.Fatalf("tampered connector misreported: %+v", tampered)
	}
	missing := results[byName["missing"]]
	if missing.BinaryReachable || missing.Error == "" {
		t.Fatalf("missing binary misreported: %+v", missing)
	}
}
