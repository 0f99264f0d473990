// Command localdir is the reference drive connector. It exposes a
// directory on the local filesystem (DOCHUB_LOCALDIR_ROOT, defaulting
// to the working directory) as a remote drive: list the documents in
// it, then fetch them into the staging dir the host provides.
package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"time"

	connectorrpc "dochub/internal/modules/connector/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

const rootEnv = "DOCHUB_LOCALDIR_ROOT"

type server struct {
	root string
}

func (s *server) GetMetadata(_ context.Context, _ *connectorrpc.Empty) (*connectorrpc.Metadata, error) {
	return &connectorrpc.Metadata{
		Name:    "localdir",
		Version: "1.0.0",
		Source:  s.root,
	}, nil
}

func (s *server) ListFiles(_ context.Context, _ *connectorrpc.Empty) (*connectorrpc.ListFilesResponse, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read root %s: %w", s.root, err)
	}
	files := make([]connectorrpc.RemoteFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, connectorrpc.RemoteFile{
			ID:         entry.Name(),
			Name:       entry.Name(),
			SizeBytes:  info.Size(),
			MIMEType:   mime.TypeByExtension(filepath.Ext(entry.Name())),
			ModifiedAt: info.ModTime().UTC().Format(time.RFC3339),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return &connectorrpc.ListFilesResponse{Files: files}, nil
}

func (s *server) FetchFile(_ context.Context, in *connectorrpc.FetchFileRequest) (*connectorrpc.FetchFileResponse, error) {
	// The remote id is the bare file name; reject anything that would
	// escape the root.
	if in.RemoteID == "" || in.RemoteID != filepath.Base(in.RemoteID) {
		return nil, fmt.Errorf("invalid remote file id: %q", in.RemoteID)
	}
	src := filepath.Join(s.root, in.RemoteID)
	info, err := os.Stat(src)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("remote file not found: %s", in.RemoteID)
	}
	dest := filepath.Join(in.DestDir, in.RemoteID)
	if err := copyFile(src, dest); err != nil {
		return nil, err
	}
	return &connectorrpc.FetchFileResponse{
		LocalPath: dest,
		Name:      in.RemoteID,
		SizeBytes: info.Size(),
	}, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}

func main() {
	root := os.Getenv(rootEnv)
	if root == "" {
		root = "."
	}
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: connectorrpc.HandshakeConfig,
		Plugins:         connectorrpc.PluginMap(&server{root: root}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
