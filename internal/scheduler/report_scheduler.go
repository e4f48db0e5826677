package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

const (
	reportInterval   = 24 * time.Hour
	reportRunTimeout = time.Minute
)

// ReportRunner is the job the scheduler fires once a day.
type ReportRunner interface {
	RunDailyReport(ctx context.Context) error
}

// ReportScheduler fires the daily report at local midnight: a one-shot
// timer aligned to the next midnight, then a 24-hour ticker. Drift is
// accepted; runs missed while the process was down are skipped.
type ReportScheduler struct {
	runner ReportRunner
	now    func() time.Time

	mu   sync.Mutex
	stop chan struct{}
}

// NewReportScheduler constructs a stopped scheduler.
func NewReportScheduler(runner ReportRunner) *ReportScheduler {
	return &ReportScheduler{
		runner: runner,
		now:    time.Now,
	}
}

// Start arms the timer. Calling Start on a running scheduler is a no-op.
func (s *ReportScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	stop := make(chan struct{})
	s.stop = stop
	go s.run(stop)
	log.Printf("[INFO] report scheduler started, first run in %s", NextRunDelay(s.now()).Round(time.Second))
}

// Stop cancels any pending one-shot or recurring timer. Idempotent. An
// in-flight report run is allowed to finish and its result discarded.
func (s *ReportScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == nil {
		return
	}
	close(s.stop)
	s.stop = nil
}

func (s *ReportScheduler) run(stop chan struct{}) {
	timer := time.NewTimer(NextRunDelay(s.now()))
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-stop:
		return
	}
	s.runReport()

	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runReport()
		case <-stop:
			return
		}
	}
}

func (s *ReportScheduler) runReport() {
	ctx, cancel := context.WithTimeout(context.Background(), reportRunTimeout)
	defer cancel()

	if err := s.runner.RunDailyReport(ctx); err != nil {
		log.Printf("[ERROR] failed to generate daily report: %v", err)
		return
	}
	log.Println("[INFO] daily report generated")
}

// NextRunDelay computes the delay until the next local midnight. When
// midnight has already passed today, tomorrow's is targeted.
func NextRunDelay(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
