package service

import "time"

func (s *StatsService) SetClock(now func() time.Time) {
	s.now = now
}
