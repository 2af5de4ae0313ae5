package service

import (
	"go.uber.org/atomic"
)

var visitCount atomic.Int64

// VisitService counts served page requests. The counter lives in memory and
// is flushed to the log by the daily stats job.
type VisitService struct{}

func (s *VisitService) Record() {
	visitCount.Inc()
}

// Flush returns the visits accumulated since the last flush and resets the
// counter.
func (s *VisitService) Flush() int64 {
	return visitCount.Swap(0)
}

func (s *VisitService) Current() int64 {
	return visitCount.Load()
}
