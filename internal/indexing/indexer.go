// Package indexing feeds issue text to the embedding store without ever
// blocking or failing the request that triggered it. The queue is bounded
// and transient failures retry with backoff, so a slow indexer degrades
// into dropped jobs and warnings instead of unbounded goroutine growth.
package indexing

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"
)

// Embedder is the external store that computes and persists a searchable
// representation of an issue's title.
type Embedder interface {
	EmbedIssueTitle(ctx context.Context, issueID int64, title string) error
}

type job struct {
	title   string
	issueID int64
}

// Trigger owns a bounded job queue and a fixed worker pool. Fire never
// blocks; Close drains the queue and waits for the workers.
type Trigger struct {
	embedder Embedder
	jobs     chan job
	group    *errgroup.Group
	cancel   context.CancelFunc
}

const (
	defaultQueueSize = 256
	defaultWorkers   = 2
	maxRetryElapsed  = 30 * time.Second
)

func NewTrigger(embedder Embedder) *Trigger {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	t := &Trigger{
		embedder: embedder,
		jobs:     make(chan job, defaultQueueSize),
		group:    g,
		cancel:   cancel,
	}
	for i := 0; i < defaultWorkers; i++ {
		g.Go(func() error {
			t.work(ctx)
			return nil
		})
	}
	return t
}

// Fire enqueues a re-indexing job for the issue. The caller does not observe
// the outcome: a full queue drops the job with a warning, and failures after
// retries are logged by the worker.
func (t *Trigger) Fire(issueID int64, title string) {
	select {
	case t.jobs <- job{issueID: issueID, title: title}:
	default:
		slog.Warn("indexing queue full, dropping job", "issue_id", issueID)
	}
}

// Close stops accepting work, drains what was already queued, and waits for
// the workers to finish.
func (t *Trigger) Close() {
	close(t.jobs)
	t.group.Wait() //nolint:errcheck // workers only return nil
	t.cancel()
}

func (t *Trigger) work(ctx context.Context) {
	for j := range t.jobs {
		t.embed(ctx, j)
	}
}

func (t *Trigger) embed(ctx context.Context, j job) {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(maxRetryElapsed),
	), ctx)

	err := backoff.Retry(func() error {
		return t.embedder.EmbedIssueTitle(ctx, j.issueID, j.title)
	}, policy)
	if err != nil {
		slog.ErrorContext(ctx, "failed to index issue title",
			"error", err,
			"issue_id", j.issueID,
		)
		return
	}
	slog.DebugContext(ctx, "indexed issue title", "issue_id", j.issueID)
}
