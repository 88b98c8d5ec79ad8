package services

import (
	"testing"
	"time"
)

func TestPollWorkerPollsAndStops(t *testing.T) {
	backend := newFakeBackend()
	orders := newTestOrderService(backend, nil)
	logger := NewLoggerService(t.TempDir())
	defer logger.Close()

	worker := NewPollWorker(orders, logger, 20*time.Millisecond)
	worker.Start()

	fetches := func() int {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		return backend.fetchOrderCalls
	}

	deadline := time.After(2 * time.Second)
	for fetches() < 2 {
		select {
		case <-deadline:
			t.Fatal("worker did not poll twice within the deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}

	worker.Stop()

	settled := fetches()
	time.Sleep(80 * time.Millisecond)
	if after := fetches(); after > settled+1 {
		t.Errorf("worker kept polling after Stop: %d -> %d", settled, after)
	}
}
