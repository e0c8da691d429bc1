package core

import "context"

// ReviewEvent describes one successful review mutation for downstream
// consumers. Status and Pages reflect the record after the operation; a review
// removed by approval is reported as approved with no pages.
type ReviewEvent struct {
	Op       string `json:"op"`
	ReviewID string `json:"reviewId"`
	Status   string `json:"status"`
	Pages    string `json:"pages"`

	// Repo and Owner address the event-ingestion target and are not part of
	// the client payload.
	Repo  string `json:"-"`
	Owner string `json:"-"`
}

// Notifier delivers a single review event to the external collaborator system.
//
//go:generate mockgen -destination=../mocks/mock_notifier.go -package=mocks . Notifier
type Notifier interface {
	Notify(ctx context.Context, event *ReviewEvent) error
}

// EventDispatcher queues review events for asynchronous, best-effort delivery.
// Dispatch never blocks the mutation that produced the event; delivery failures
// are logged and swallowed.
type EventDispatcher interface {
	// Dispatch queues an event. It only fails when the queue is saturated.
	Dispatch(ctx context.Context, event *ReviewEvent) error
	// Stop drains the queue and waits for in-flight deliveries.
	Stop()
}
