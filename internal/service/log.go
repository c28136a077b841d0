package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Egor213/CallTrack/internal/broker"
	"github.com/Egor213/CallTrack/internal/domain"
	"github.com/Egor213/CallTrack/internal/metrics"
	"github.com/Egor213/CallTrack/internal/repo"
	"github.com/Egor213/CallTrack/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/CallTrack/pkg/errors"
	jsoniter "github.com/json-iterator/go"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPageLimit = 50
	DefaultPage      = 1
	LatestLimit      = 5
)

type LogService struct {
	logRepo        repo.Log
	trManager      TxManager
	counters       *metrics.Counters
	brokerProducer broker.Producer
}

func NewLogService(lr repo.Log, tm TxManager, cnt *metrics.Counters, p broker.Producer) *LogService {
	return &LogService{
		logRepo:        lr,
		trManager:      tm,
		counters:       cnt,
		brokerProducer: p,
	}
}

func (s *LogService) SendLog(ctx context.Context, in *domain.LogInput) (int64, error) {
	details, err := domain.DecodeDetails(in.ResponseBody)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotCreateLog, err))
	}

	logCall(in, details)

	rec, err := domain.NewLogRecord(in)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotCreateLog, err))
	}

	id, err := s.logRepo.CreateLog(ctx, rec)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotCreateLog, err))
	}
	rec.ID = id

	s.counters.LogsReceived.Inc(in.Service, domain.StatusClass(in.Status))
	s.publish(ctx, rec)

	return id, nil
}

// logCall writes the console line for one reported call.
func logCall(in *domain.LogInput, details any) {
	entry := log.WithFields(log.Fields{
		"service":         in.Service,
		"method":          in.Method,
		"path":            in.Path,
		"status":          in.Status,
		"duration":        in.Duration,
		"requestBody":     in.RequestBody,
		"responseDetails": details,
	})
	if in.Error != "" {
		entry = entry.WithField("error", in.Error)
	}

	msg := fmt.Sprintf("%s %s - %d", in.Method, in.Path, in.Status)
	if domain.IsErrorStatus(in.Status) {
		entry.Error(msg)
		return
	}
	entry.Info(msg)
}

type publishedRecord struct {
	ID           int64           `json:"id"`
	Service      string          `json:"service"`
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	Status       int             `json:"status"`
	Duration     int             `json:"duration"`
	RequestBody  json.RawMessage `json:"requestBody"`
	ResponseBody json.RawMessage `json:"responseBody"`
	Error        *string         `json:"error"`
	PublishedAt  time.Time       `json:"publishedAt"`
}

// publish is best effort: a broker failure never fails ingestion.
func (s *LogService) publish(ctx context.Context, rec *domain.LogRecord) {
	if s.brokerProducer == nil {
		return
	}

	view, err := rec.View()
	if err != nil {
		log.WithField("id", rec.ID).Errorf("Failed to decode record for publishing: %v", err)
		return
	}

	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(publishedRecord{
		ID:           view.ID,
		Service:      view.Service,
		Method:       view.Method,
		Path:         view.Path,
		Status:       view.Status,
		Duration:     view.Duration,
		RequestBody:  view.RequestBody,
		ResponseBody: view.ResponseBody,
		Error:        view.Error,
		PublishedAt:  time.Now().UTC(),
	})
	if err != nil {
		log.WithField("id", rec.ID).Errorf("Failed to encode record for publishing: %v", err)
		return
	}

	if err := s.brokerProducer.SendMessage(ctx, []byte(rec.Service), payload); err != nil {
		log.WithError(err).WithField("id", rec.ID).Warn("Failed to publish call record")
		s.counters.BrokerPublished.Inc("failed")
		return
	}
	s.counters.BrokerPublished.Inc("ok")
}

func (s *LogService) GetLogs(ctx context.Context, q domain.LogQuery) (domain.LogPage, error) {
	if q.Limit == 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.Limit < 0 || q.Page < 0 {
		return domain.LogPage{}, ErrInvalidPageQuery
	}

	filter := repotypes.LogFilter{
		Status:  q.Status,
		Service: q.Service,
		Method:  q.Method,
	}
	offset := uint64(q.Page-1) * uint64(q.Limit)

	var (
		records []domain.LogRecord
		total   int64
	)

	// The page and its total come from one snapshot.
	err := s.trManager.Do(ctx, func(ctx context.Context) error {
		var err error
		if records, err = s.logRepo.GetLogs(ctx, filter, uint64(q.Limit), offset); err != nil {
			return err
		}
		total, err = s.logRepo.CountLogs(ctx, filter)
		return err
	})
	if err != nil {
		return domain.LogPage{}, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotGetLogs, err))
	}

	views := make([]domain.LogView, 0, len(records))
	for _, rec := range records {
		view, err := rec.View()
		if err != nil {
			return domain.LogPage{}, errorsUtils.WrapPathErr(fmt.Errorf("%w: record %d: %w", ErrCannotGetLogs, rec.ID, err))
		}
		views = append(views, view)
	}

	return domain.LogPage{
		Logs: views,
		Pagination: domain.Pagination{
			Total: int(total),
			Page:  q.Page,
			Limit: q.Limit,
			Pages: pageCount(int(total), q.Limit),
		},
	}, nil
}

func pageCount(total, limit int) int {
	return (total + limit - 1) / limit
}

func (s *LogService) GetLatest(ctx context.Context) ([]domain.LogSummary, error) {
	latest, err := s.logRepo.GetLatest(ctx, LatestLimit)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotGetLatest, err))
	}
	return latest, nil
}
