// Package jobs runs background work, currently the asynchronous delivery of
// review change notifications.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sevigo/page-warden/internal/core"
)

// notifyTimeout bounds a single delivery attempt so a slow collaborator never
// wedges a worker.
const notifyTimeout = 10 * time.Second

// dispatcher implements core.EventDispatcher with a bounded queue and a pool
// of worker goroutines. Delivery is best effort: one attempt per event, no
// retry, failures logged and swallowed.
type dispatcher struct {
	notifier   core.Notifier
	eventQueue chan *core.ReviewEvent
	maxWorkers int
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// NewDispatcher initializes a dispatcher with a worker pool.
// If maxWorkers is 0 or negative, it defaults to 1.
func NewDispatcher(notifier core.Notifier, maxWorkers int, logger *slog.Logger) core.EventDispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		notifier:   notifier,
		maxWorkers: maxWorkers,
		eventQueue: make(chan *core.ReviewEvent, 100),
		logger:     logger,
	}
	d.startWorkers()
	return d
}

func (d *dispatcher) startWorkers() {
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.startWorker(i)
	}
}

// startWorker delivers events from the queue until it is closed.
func (d *dispatcher) startWorker(workerID int) {
	defer d.wg.Done()
	d.logger.Debug("starting notification worker", "id", workerID)

	for event := range d.eventQueue {
		d.deliver(event)
	}

	d.logger.Debug("shutting down notification worker", "id", workerID)
}

func (d *dispatcher) deliver(event *core.ReviewEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := d.notifier.Notify(ctx, event); err != nil {
		d.logger.Error("review notification failed",
			"op", event.Op,
			"review", event.ReviewID,
			"repo", event.Repo,
			"owner", event.Owner,
			"error", err,
		)
	}
}

// Dispatch queues a review event for delivery. The mutation that produced the
// event has already been persisted, so a full queue is reported to the caller
// only for logging, never as a request failure.
func (d *dispatcher) Dispatch(_ context.Context, event *core.ReviewEvent) error {
	select {
	case d.eventQueue <- event:
		return nil
	default:
		return fmt.Errorf("notification queue is full, dropping %s event for review %s", event.Op, event.ReviewID)
	}
}

// Stop closes the queue and waits for all pending deliveries to finish.
func (d *dispatcher) Stop() {
	d.logger.Info("stopping notification dispatcher")
	close(d.eventQueue)
	d.wg.Wait()
}
