package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/repo"
	"github.com/Egor213/CallTrack/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/CallTrack/pkg/errors"
)

const (
	TimeBuckets = 24
	// HourLabelLayout renders "03 PM".
	HourLabelLayout = "03 PM"
)

type StatsService struct {
	logRepo   repo.Log
	statsRepo repo.Stats
	trManager TxManager
	loc       *time.Location
	now       func() time.Time
}

func NewStatsService(lr repo.Log, sr repo.Stats, tm TxManager, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{
		logRepo:   lr,
		statsRepo: sr,
		trManager: tm,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *StatsService) GetStats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats

	err := s.trManager.Do(ctx, func(ctx context.Context) error {
		var err error
		stats, err = s.collect(ctx)
		return err
	})
	if err != nil {
		return domain.Stats{}, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotGetStats, err))
	}

	return stats, nil
}

func (s *StatsService) collect(ctx context.Context) (domain.Stats, error) {
	total, err := s.logRepo.CountLogs(ctx, repotypes.LogFilter{})
	if err != nil {
		return domain.Stats{}, err
	}

	methods, err := s.statsRepo.CountByMethod(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	statuses, err := s.statsRepo.CountByStatus(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	services, err := s.statsRepo.CountByService(ctx)
	if err != nil {
		return domain.Stats{}, err
	}

	from := FirstBucketStart(s.now(), s.loc)
	hours, err := s.statsRepo.CountByHour(ctx, from, TimeBuckets)
	if err != nil {
		return domain.Stats{}, err
	}

	statusDistribution := StatusDistribution(statuses)
	successRate, errorRate := Rates(statusDistribution, int(total))

	return domain.Stats{
		TotalLogs:           int(total),
		MethodDistribution:  namedCounts(methods),
		StatusDistribution:  statusDistribution,
		ServiceDistribution: namedCounts(services),
		TimeDistribution:    TimeDistribution(from, hours),
		SuccessRate:         successRate,
		ErrorRate:           errorRate,
	}, nil
}

func namedCounts(groups []repotypes.GroupCount) []domain.NamedCount {
	counts := make([]domain.NamedCount, 0, len(groups))
	for _, g := range groups {
		counts = append(counts, domain.NamedCount{Name: g.Name, Value: int(g.Count)})
	}
	return counts
}

// StatusDistribution folds per-status counts into status classes. Empty
// classes are left out; the order follows domain.StatusClasses.
func StatusDistribution(statuses []repotypes.StatusCount) []domain.NamedCount {
	byClass := make(map[string]int64, len(domain.StatusClasses))
	for _, sc := range statuses {
		byClass[domain.StatusClass(sc.Status)] += sc.Count
	}

	counts := make([]domain.NamedCount, 0, len(byClass))
	for _, class := range domain.StatusClasses {
		if n, ok := byClass[class]; ok && n > 0 {
			counts = append(counts, domain.NamedCount{Name: class, Value: int(n)})
		}
	}
	return counts
}

// Rates returns the 2xx and 4xx+5xx shares of total in whole percent.
// Both are 0 when total is 0.
func Rates(statusDistribution []domain.NamedCount, total int) (successRate, errorRate int) {
	if total <= 0 {
		return 0, 0
	}

	var success, failed int
	for _, nc := range statusDistribution {
		switch nc.Name {
		case domain.StatusClass2xx:
			success += nc.Value
		case domain.StatusClass4xx, domain.StatusClass5xx:
			failed += nc.Value
		}
	}

	percent := func(n int) int {
		return int(math.Round(float64(n) * 100 / float64(total)))
	}
	return percent(success), percent(failed)
}

// FirstBucketStart is the start of the clock hour 23 hours before the one
// containing now, in loc.
func FirstBucketStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	currentHour := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
	return currentHour.Add(-(TimeBuckets - 1) * time.Hour)
}

// TimeDistribution expands sparse per-hour counts into exactly TimeBuckets
// chronological entries starting at from.
func TimeDistribution(from time.Time, counts map[int]int64) []domain.HourCount {
	buckets := make([]domain.HourCount, 0, TimeBuckets)
	for i := 0; i < TimeBuckets; i++ {
		start := from.Add(time.Duration(i) * time.Hour)
		buckets = append(buckets, domain.HourCount{
			Label: start.Format(HourLabelLayout),
			Start: start,
			Count: int(counts[i]),
		})
	}
	return buckets
}
