package grpcv1

import (
	"context"
	stdjson "encoding/json"

	"google.golang.org/grpc"
)

const (
	ServiceName   = "calltrack.v1.CallLogService"
	SendLogMethod = "/" + ServiceName + "/SendLog"
)

type SendLogRequest struct {
	Service      string             `json:"service"`
	Method       string             `json:"method"`
	Path         string             `json:"path"`
	Status       int                `json:"status"`
	Duration     int                `json:"duration"`
	RequestBody  stdjson.RawMessage `json:"requestBody,omitempty"`
	ResponseBody stdjson.RawMessage `json:"responseBody,omitempty"`
	Error        string             `json:"error,omitempty"`
}

type SendLogResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type CallLogServer interface {
	SendLog(ctx context.Context, req *SendLogRequest) (*SendLogResponse, error)
}

func sendLogHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SendLogRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CallLogServer).SendLog(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SendLogMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CallLogServer).SendLog(ctx, req.(*SendLogRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CallLogServiceDesc describes the service for grpc.Server.RegisterService.
// Messages travel as JSON, see CodecName.
var CallLogServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CallLogServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SendLog",
			Handler:    sendLogHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calltrack/v1/calllog",
}

func RegisterCallLogServer(s grpc.ServiceRegistrar, srv CallLogServer) {
	s.RegisterService(&CallLogServiceDesc, srv)
}

type CallLogClient interface {
	SendLog(ctx context.Context, in *SendLogRequest, opts ...grpc.CallOption) (*SendLogResponse, error)
}

type callLogClient struct {
	cc grpc.ClientConnInterface
}

func NewCallLogClient(cc grpc.ClientConnInterface) CallLogClient {
	return &callLogClient{cc: cc}
}

func (c *callLogClient) SendLog(ctx context.Context, in *SendLogRequest, opts ...grpc.CallOption) (*SendLogResponse, error) {
	out := new(SendLogResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, SendLogMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
