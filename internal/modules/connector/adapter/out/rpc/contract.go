package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey    = "dochub"
	serviceName     = "dochub.connector.v1.DriveConnector"
	jsonCodecName   = "json"
	methodMetadata  = "/" + serviceName + "/GetMetadata"
	methodListFiles = "/" + serviceName + "/ListFiles"
	methodFetchFile = "/" + serviceName + "/FetchFile"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "DOCHUB_CONNECTOR",
	MagicCookieValue: "dochub",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Source  string `json:"source"`
}

type RemoteFile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SizeBytes  int64  `json:"size_bytes"`
	MIMEType   string `json:"mime_type"`
	ModifiedAt string `json:"modified_at"`
}

type ListFilesResponse struct {
	Files []RemoteFile `json:"files"`
}

type FetchFileRequest struct {
	RemoteID string `json:"remote_id"`
	DestDir  string `json:"dest_dir"`
}

type FetchFileResponse struct {
	LocalPath string `json:"local_path"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
}

type DriveConnectorServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListFiles(ctx context.Context, in *Empty) (*ListFilesResponse, error)
	FetchFile(ctx context.Context, in *FetchFileRequest) (*FetchFileResponse, error)
}

type DriveConnectorClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListFiles(ctx context.Context) (*ListFilesResponse, error)
	FetchFile(ctx context.Context, in *FetchFileRequest) (*FetchFileResponse, error)
}

type driveConnectorClient struct {
	conn *grpc.ClientConn
}

func NewDriveConnectorClient(conn *grpc.ClientConn) DriveConnectorClient {
	return &driveConnectorClient{conn: conn}
}

func (c *driveConnectorClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *driveConnectorClient) ListFiles(ctx context.Context) (*ListFilesResponse, error) {
	out := &ListFilesResponse{}
	if err := c.conn.Invoke(ctx, methodListFiles, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *driveConnectorClient) FetchFile(ctx context.Context, in *FetchFileRequest) (*FetchFileResponse, error) {
	out := &FetchFileResponse{}
	if err := c.conn.Invoke(ctx, methodFetchFile, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterDriveConnectorServer(server grpc.ServiceRegistrar, impl DriveConnectorServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*DriveConnectorServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "ListFiles",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.ListFiles(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodListFiles}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.ListFiles(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "FetchFile",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &FetchFileRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.FetchFile(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodFetchFile}
					handler := func(ctx context.Context, req any) (any, error) {
						inReq, ok := req.(*FetchFileRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.FetchFile(ctx, inReq)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/connector-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl DriveConnectorServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterDriveConnectorServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewDriveConnectorClient(conn), nil
}

func PluginMap(impl DriveConnectorServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
