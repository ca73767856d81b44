package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingScanner struct {
	count atomic.Int32
}

func (c *countingScanner) ScanAllInboxes() {
	c.count.Add(1)
}

func TestSchedulerRunsImmediatelyAndOnInterval(t *testing.T) {
	scanner := &countingScanner{}
	s := NewScanScheduler(scanner, 20*time.Millisecond)

	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(time.Second)
	for scanner.count.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.GreaterOrEqual(t, scanner.count.Load(), int32(2), "expected the immediate run plus at least one tick")
}

func TestSchedulerStopHaltsTicks(t *testing.T) {
	scanner := &countingScanner{}
	s := NewScanScheduler(scanner, 10*time.Millisecond)

	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	// Allow a tick that raced with Stop to drain before sampling.
	time.Sleep(20 * time.Millisecond)
	after := scanner.count.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, scanner.count.Load(), "no further cycles after Stop")
}

func TestSchedulerDefaultsInvalidInterval(t *testing.T) {
	s := NewScanScheduler(&countingScanner{}, 0)
	assert.Equal(t, time.Hour, s.interval)
}
