package client

import (
	"context"
	"sync"
	"time"

	"github.com/aulavivo/backend/core"
	"github.com/aulavivo/backend/core/progress"
)

// Watcher keeps a local snapshot of a user's course progress reconciled with
// the server. It polls on a fixed interval and replaces the snapshot
// wholesale with whatever the server returns; the server is the single
// source of truth and no local merging is attempted. A failed poll is logged
// and skipped, the previous snapshot stays in place until the next tick.
type Watcher struct {
	client   *Client
	logger   core.Logger
	interval time.Duration
	courseID int
	userID   int

	mu       sync.RWMutex
	snapshot progress.CourseProgressView

	updates chan progress.CourseProgressView
	stop    chan struct{}
	done    chan struct{}
}

func NewWatcher(client *Client, logger core.Logger, conf *core.Config, courseID, userID int) *Watcher {
	return &Watcher{
		client:   client,
		logger:   logger,
		interval: conf.Reconcile.PollInterval,
		courseID: courseID,
		userID:   userID,
		updates:  make(chan progress.CourseProgressView, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins polling. It fetches an initial snapshot immediately, then on
// every tick until Stop is called or ctx is cancelled. No updates are
// delivered after Start returns.
func (w *Watcher) Start(ctx context.Context) {
	defer close(w.done)
	defer close(w.updates)

	w.poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// Stop halts polling and waits for the polling goroutine to exit.
func (w *Watcher) Stop() {
	close(w.stop)
	<-w.done
}

// Updates delivers each fresh snapshot. The channel is closed when polling
// stops. Slow consumers only ever see the latest snapshot; stale ones are
// dropped.
func (w *Watcher) Updates() <-chan progress.CourseProgressView {
	return w.updates
}

// Snapshot returns the last reconciled view.
func (w *Watcher) Snapshot() progress.CourseProgressView {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

func (w *Watcher) poll(ctx context.Context) {
	view, err := w.client.CourseLessons(ctx, w.courseID, w.userID)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Warn("reconciliation poll failed", err)
		}
		return
	}

	w.mu.Lock()
	w.snapshot = view
	w.mu.Unlock()

	// drop the stale pending snapshot, if any
	select {
	case <-w.updates:
	default:
	}
	w.updates <- view
}
