// Package github delivers review change notifications to GitHub's
// repository_dispatch event-ingestion endpoint.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/page-warden/internal/core"
)

type dispatchNotifier struct {
	client    *github.Client
	eventType string
	logger    *slog.Logger
}

// NewDispatchNotifier wraps an authenticated go-github client as a
// core.Notifier. Each review mutation becomes one repository_dispatch event
// carrying the {op, reviewId, status, pages} payload.
func NewDispatchNotifier(client *github.Client, eventType string, logger *slog.Logger) core.Notifier {
	return &dispatchNotifier{client: client, eventType: eventType, logger: logger}
}

// Notify sends a single dispatch event. It is attempted once; the caller owns
// the fire-and-forget semantics.
func (n *dispatchNotifier) Notify(ctx context.Context, event *core.ReviewEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode review event: %w", err)
	}
	raw := json.RawMessage(payload)

	_, _, err = n.client.Repositories.Dispatch(ctx, event.Owner, event.Repo, github.DispatchRequestOptions{
		EventType:     n.eventType,
		ClientPayload: &raw,
	})
	if err != nil {
		return fmt.Errorf("failed to dispatch %s event for %s/%s: %w", event.Op, event.Owner, event.Repo, err)
	}

	n.logger.Debug("review event dispatched",
		"owner", event.Owner, "repo", event.Repo, "op", event.Op, "review", event.ReviewID)
	return nil
}

type noopNotifier struct {
	logger *slog.Logger
}

// NewNoopNotifier returns a notifier that drops events. It stands in when no
// GitHub credentials are configured.
func NewNoopNotifier(logger *slog.Logger) core.Notifier {
	return &noopNotifier{logger: logger}
}

func (n *noopNotifier) Notify(_ context.Context, event *core.ReviewEvent) error {
	n.logger.Debug("notifications disabled, dropping review event",
		"op", event.Op, "review", event.ReviewID, "repo", event.Repo, "owner", event.Owner)
	return nil
}
