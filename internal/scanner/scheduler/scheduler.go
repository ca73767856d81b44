package scheduler

import (
	"log"
	"time"

	"github.com/MSHIVVANI/smart-job-tracker/internal/scanner/usecase"
)

// ScanScheduler runs the inbox scan on a fixed interval.
type ScanScheduler struct {
	scanner  usecase.ScannerUsecase
	interval time.Duration
	stopChan chan struct{}
}

// NewScanScheduler creates a new scheduler
func NewScanScheduler(scanner usecase.ScannerUsecase, interval time.Duration) *ScanScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ScanScheduler{
		scanner:  scanner,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *ScanScheduler) Start() {
	log.Printf("[SCHEDULER] Starting inbox scan scheduler (interval: %s)", s.interval)

	go func() {
		// Run immediately on start
		s.scanner.ScanAllInboxes()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.scanner.ScanAllInboxes()
			case <-s.stopChan:
				log.Println("[SCHEDULER] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler. An in-flight cycle is allowed to
// finish; cycles are short-lived and idempotent.
func (s *ScanScheduler) Stop() {
	close(s.stopChan)
}
