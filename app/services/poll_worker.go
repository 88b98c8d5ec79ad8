package services

import (
	"context"
	"log"
	"time"
)

// PollWorker keeps the order snapshot in sync with the webhook backend.
// Dashboards get their updates pushed over the websocket hub, but the
// backend stays the source of truth: every cycle replaces the snapshot,
// which also reconciles any optimistic change the backend rejected.
type PollWorker struct {
	orders    *OrderService
	logger    *LoggerService
	interval  time.Duration
	stopChan  chan bool
	isRunning bool
}

// NewPollWorker creates a worker polling at interval.
func NewPollWorker(orders *OrderService, logger *LoggerService, interval time.Duration) *PollWorker {
	return &PollWorker{
		orders:   orders,
		logger:   logger,
		interval: interval,
		stopChan: make(chan bool),
	}
}

// Start launches the poll loop in the background.
func (w *PollWorker) Start() {
	go w.run()
	log.Printf("Order poll worker started with interval: %v", w.interval)
}

func (w *PollWorker) run() {
	w.isRunning = true
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Initial poll
	w.poll()

	for {
		select {
		case <-ticker.C:
			w.poll()
		case <-w.stopChan:
			log.Println("Order poll worker stopped")
			w.isRunning = false
			return
		}
	}
}

func (w *PollWorker) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	if err := w.orders.Refresh(ctx); err != nil {
		// The next cycle retries; the dashboards keep the last snapshot.
		w.logger.LogWarning("Order poll failed: %v", err)
	}
}

// Stop stops the worker.
func (w *PollWorker) Stop() {
	if w.isRunning {
		w.stopChan <- true
	}
}
