package grpcv1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	grpcv1 "github.com/Egor213/CallTrack/internal/controller/grpc/v1"
	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/metrics"
	servicemocks "github.com/Egor213/CallTrack/internal/mocks/service"
	"github.com/Egor213/CallTrack/internal/service"
	"github.com/Egor213/CallTrack/pkg/grpcserver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newBufClient(t *testing.T, logs service.Log) grpcv1.CallLogClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	services := &service.Services{Log: logs}

	srv, err := grpcserver.New(
		grpcv1.RegisterServices(services, metrics.NewCounters(prometheus.NewRegistry())),
		grpcserver.WithListener(lis),
		grpcserver.WithShutdownTimeout(time.Second),
		grpcserver.WithUnaryInterceptors(grpcv1.LoggingInterceptor()),
	)
	require.NoError(t, err)
	t.Cleanup(srv.Shutdown)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return grpcv1.NewCallLogClient(conn)
}

func TestLogController_SendLog(t *testing.T) {
	validReq := &grpcv1.SendLogRequest{
		Service:     "billing",
		Method:      "POST",
		Path:        "/invoices",
		Status:      201,
		Duration:    14,
		RequestBody: json.RawMessage(`{"amount":10}`),
	}

	testCases := []struct {
		name         string
		req          *grpcv1.SendLogRequest
		mockBehavior func(m *servicemocks.MockLog)
		wantID       int64
		wantCode     codes.Code
	}{
		{
			name: "success",
			req:  validReq,
			mockBehavior: func(m *servicemocks.MockLog) {
				m.EXPECT().
					SendLog(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in *domain.LogInput) (int64, error) {
						assert.Equal(t, "billing", in.Service)
						assert.Equal(t, 201, in.Status)
						assert.JSONEq(t, `{"amount":10}`, string(in.RequestBody))
						assert.Empty(t, in.ResponseBody)
						return 7, nil
					})
			},
			wantID:   7,
			wantCode: codes.OK,
		},
		{
			name:         "missing path",
			req:          &grpcv1.SendLogRequest{Service: "billing", Method: "GET", Status: 200},
			mockBehavior: func(*servicemocks.MockLog) {},
			wantCode:     codes.Internal,
		},
		{
			name:         "negative duration",
			req:          &grpcv1.SendLogRequest{Service: "billing", Method: "GET", Path: "/", Duration: -1},
			mockBehavior: func(*servicemocks.MockLog) {},
			wantCode:     codes.Internal,
		},
		{
			name: "service failure",
			req:  validReq,
			mockBehavior: func(m *servicemocks.MockLog) {
				m.EXPECT().SendLog(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("insert failed"))
			},
			wantCode: codes.Internal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			logs := servicemocks.NewMockLog(ctrl)
			tc.mockBehavior(logs)

			client := newBufClient(t, logs)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			resp, err := client.SendLog(ctx, tc.req)

			if tc.wantCode != codes.OK {
				require.Error(t, err)
				assert.Equal(t, tc.wantCode, status.Code(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Equal(t, tc.wantID, resp.ID)
		})
	}
}

func TestLogController_FailuresHideDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	logs := servicemocks.NewMockLog(ctrl)
	logs.EXPECT().SendLog(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("password=secret"))

	controller := grpcv1.NewLogController(logs, metrics.NewCounters(prometheus.NewRegistry()))

	_, err := controller.SendLog(context.Background(), &grpcv1.SendLogRequest{Service: "a", Method: "GET", Path: "/"})
	require.Error(t, err)
	assert.Equal(t, "Failed to create log entry", status.Convert(err).Message())

	_, err = controller.SendLog(context.Background(), &grpcv1.SendLogRequest{Service: "a", Method: "GET"})
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "Failed to create log entry", status.Convert(err).Message())
}
