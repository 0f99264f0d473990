package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	connectorrpc "dochub/internal/modules/connector/adapter/out/rpc"
	"dochub/internal/modules/connector/domain"
	connectorout "dochub/internal/modules/connector/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 10 * time.Second
	// fetches stream file contents and get a longer budget
	fetchCallTimeout = 2 * time.Minute
)

type GRPCHost struct{}

func NewGRPCHost() connectorout.Host {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Source: meta.Source}, nil
}

func (h *GRPCHost) ListFiles(ctx context.Context, manifest domain.Manifest) ([]domain.RemoteFile, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	response, err := client.ListFiles(callCtx)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s", domain.ErrConnectorTimeout, manifest.Name)
		}
		return nil, fmt.Errorf("list remote files: %w", err)
	}
	out := make([]domain.RemoteFile, 0, len(response.Files))
	for _, f := range response.Files {
		modifiedAt, _ := time.Parse(time.RFC3339, f.ModifiedAt)
		out = append(out, domain.RemoteFile{
			ID:         f.ID,
			Name:       f.Name,
			SizeBytes:  f.SizeBytes,
			MIMEType:   f.MIMEType,
			ModifiedAt: modifiedAt,
		})
	}
	return out, nil
}

func (h *GRPCHost) FetchFile(ctx context.Context, manifest domain.Manifest, remoteID, destDir string) (domain.FetchResult, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.FetchResult{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, fetchCallTimeout)
	defer cancel()

	response, err := client.FetchFile(callCtx, &connectorrpc.FetchFileRequest{RemoteID: remoteID, DestDir: destDir})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.FetchResult{}, fmt.Errorf("%w: %s", domain.ErrConnectorTimeout, manifest.Name)
		}
		return domain.FetchResult{}, fmt.Errorf("fetch remote file: %w", err)
	}
	return domain.FetchResult{
		LocalPath: response.LocalPath,
		Name:      response.Name,
		SizeBytes: response.SizeBytes,
	}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (connectorrpc.DriveConnectorClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  connectorrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          connectorrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start connector client: %w", err)
	}
	raw, err := rpcClient.Dispense(connectorrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense connector: %w", err)
	}
	typed, ok := raw.(connectorrpc.DriveConnectorClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("connector rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
