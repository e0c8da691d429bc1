package jobs

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/page-warden/internal/core"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []*core.ReviewEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event *core.ReviewEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

func (n *recordingNotifier) seen() []*core.ReviewEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*core.ReviewEvent(nil), n.events...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestDispatcherDeliversEvents(t *testing.T) {
	notifier := &recordingNotifier{}
	d := NewDispatcher(notifier, 2, testLogger())

	for _, op := range []string{"update", "submit", "approve"} {
		err := d.Dispatch(context.Background(), &core.ReviewEvent{Op: op, ReviewID: "r1", Repo: "site", Owner: "acme"})
		assert.NoError(t, err)
	}
	d.Stop()

	assert.Len(t, notifier.seen(), 3)
}

func TestDispatcherSwallowsNotifierFailure(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("dispatch refused")}
	d := NewDispatcher(notifier, 1, testLogger())

	err := d.Dispatch(context.Background(), &core.ReviewEvent{Op: "update", ReviewID: "r1"})
	assert.NoError(t, err)
	d.Stop()

	// The failure is logged inside the worker; nothing surfaces to the caller.
	assert.Len(t, notifier.seen(), 1)
}

func TestDispatcherDefaultsToOneWorker(t *testing.T) {
	notifier := &recordingNotifier{}
	d := NewDispatcher(notifier, 0, testLogger())

	assert.NoError(t, d.Dispatch(context.Background(), &core.ReviewEvent{Op: "update", ReviewID: "r1"}))
	d.Stop()
	assert.Len(t, notifier.seen(), 1)
}
