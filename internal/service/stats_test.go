package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Egor213/CallTrack/internal/domain"
	repomocks "github.com/Egor213/CallTrack/internal/mocks/repository"
	servicemocks "github.com/Egor213/CallTrack/internal/mocks/service"
	"github.com/Egor213/CallTrack/internal/repo/repotypes"
	"github.com/Egor213/CallTrack/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func passThroughTx(ctrl *gomock.Controller) *servicemocks.MockTxManager {
	tm := servicemocks.NewMockTxManager(ctrl)
	tm.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
	return tm
}

func TestStatsService_GetStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	now := time.Date(2026, 10, 15, 14, 37, 12, 0, time.UTC)
	from := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

	logRepo := repomocks.NewMockLog(ctrl)
	statsRepo := repomocks.NewMockStats(ctrl)

	logRepo.EXPECT().CountLogs(gomock.Any(), repotypes.LogFilter{}).Return(int64(10), nil).Times(2)
	statsRepo.EXPECT().CountByMethod(gomock.Any()).
		Return([]repotypes.GroupCount{{Name: "GET", Count: 7}, {Name: "POST", Count: 3}}, nil).Times(2)
	statsRepo.EXPECT().CountByStatus(gomock.Any()).
		Return([]repotypes.StatusCount{{Status: 199, Count: 1}, {Status: 200, Count: 4}, {Status: 250, Count: 1}, {Status: 404, Count: 2}, {Status: 550, Count: 2}}, nil).Times(2)
	statsRepo.EXPECT().CountByService(gomock.Any()).
		Return([]repotypes.GroupCount{{Name: "auth", Count: 6}, {Name: "billing", Count: 4}}, nil).Times(2)
	statsRepo.EXPECT().CountByHour(gomock.Any(), from, service.TimeBuckets).
		Return(map[int]int64{0: 2, 23: 8}, nil).Times(2)

	s := service.NewStatsService(logRepo, statsRepo, passThroughTx(ctrl), time.UTC)
	s.SetClock(func() time.Time { return now })

	got, err := s.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 10, got.TotalLogs)
	assert.Equal(t, []domain.NamedCount{{Name: "GET", Value: 7}, {Name: "POST", Value: 3}}, got.MethodDistribution)
	assert.Equal(t, []domain.NamedCount{{Name: "auth", Value: 6}, {Name: "billing", Value: 4}}, got.ServiceDistribution)
	assert.Equal(t, []domain.NamedCount{
		{Name: "2xx", Value: 5},
		{Name: "4xx", Value: 2},
		{Name: "5xx", Value: 2},
		{Name: "other", Value: 1},
	}, got.StatusDistribution)
	assert.Equal(t, 50, got.SuccessRate)
	assert.Equal(t, 40, got.ErrorRate)

	require.Len(t, got.TimeDistribution, 24)
	assert.Equal(t, "03 PM", got.TimeDistribution[0].Label)
	assert.Equal(t, from, got.TimeDistribution[0].Start)
	assert.Equal(t, 2, got.TimeDistribution[0].Count)
	assert.Equal(t, "02 PM", got.TimeDistribution[23].Label)
	assert.Equal(t, 8, got.TimeDistribution[23].Count)
	for i := 1; i < 23; i++ {
		assert.Equal(t, 0, got.TimeDistribution[i].Count)
		assert.True(t, got.TimeDistribution[i].Start.After(got.TimeDistribution[i-1].Start))
	}

	again, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestStatsService_GetStatsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	logRepo := repomocks.NewMockLog(ctrl)
	statsRepo := repomocks.NewMockStats(ctrl)

	logRepo.EXPECT().CountLogs(gomock.Any(), repotypes.LogFilter{}).Return(int64(3), nil)
	statsRepo.EXPECT().CountByMethod(gomock.Any()).Return(nil, errors.New("db error"))

	s := service.NewStatsService(logRepo, statsRepo, passThroughTx(ctrl), time.UTC)

	_, err := s.GetStats(ctx)
	assert.ErrorIs(t, err, service.ErrCannotGetStats)
}

func TestStatsService_TxError(t *testing.T) {
	ctrl := gomock.NewController(t)

	tm := servicemocks.NewMockTxManager(ctrl)
	tm.EXPECT().Do(gomock.Any(), gomock.Any()).Return(errors.New("begin failed"))

	s := service.NewStatsService(repomocks.NewMockLog(ctrl), repomocks.NewMockStats(ctrl), tm, nil)

	_, err := s.GetStats(context.Background())
	assert.ErrorIs(t, err, service.ErrCannotGetStats)
}

func TestStatusDistribution(t *testing.T) {
	testCases := []struct {
		name     string
		statuses []repotypes.StatusCount
		want     []domain.NamedCount
	}{
		{
			name:     "empty",
			statuses: nil,
			want:     []domain.NamedCount{},
		},
		{
			name:     "boundaries",
			statuses: []repotypes.StatusCount{{Status: 199, Count: 1}, {Status: 250, Count: 1}, {Status: 550, Count: 1}, {Status: 300, Count: 2}, {Status: 399, Count: 1}},
			want: []domain.NamedCount{
				{Name: "2xx", Value: 1},
				{Name: "3xx", Value: 3},
				{Name: "5xx", Value: 1},
				{Name: "other", Value: 1},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.StatusDistribution(tc.statuses))
		})
	}
}

func TestRates(t *testing.T) {
	success, failed := service.Rates(nil, 0)
	assert.Zero(t, success)
	assert.Zero(t, failed)

	dist := []domain.NamedCount{{Name: "2xx", Value: 2}, {Name: "3xx", Value: 1}, {Name: "4xx", Value: 0}, {Name: "5xx", Value: 0}}
	success, failed = service.Rates(dist, 3)
	assert.Equal(t, 67, success)
	assert.Equal(t, 0, failed)
}

func TestFirstBucketStart(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 10, 15, 9, 5, 0, 0, time.UTC) // 14:35 IST

	got := service.FirstBucketStart(now, ist)

	assert.Equal(t, time.Date(2026, 10, 14, 15, 0, 0, 0, ist), got)
	assert.Equal(t, ist, got.Location())
}

func TestTimeDistribution(t *testing.T) {
	from := time.Date(2026, 10, 14, 23, 0, 0, 0, time.UTC)

	got := service.TimeDistribution(from, nil)

	require.Len(t, got, service.TimeBuckets)
	assert.Equal(t, "11 PM", got[0].Label)
	assert.Equal(t, "12 AM", got[1].Label)
	assert.Equal(t, from.Add(23*time.Hour), got[23].Start)
	for _, b := range got {
		assert.Zero(t, b.Count)
	}
}
