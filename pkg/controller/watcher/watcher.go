package watcher

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	fsrepo "github.com/taskbeacon/taskbeacon/pkg/repository/firestore"
	"github.com/taskbeacon/taskbeacon/pkg/utils/async"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	tasksCollection   = "tasks"
	reportsCollection = "reports"
)

// Handler receives document change events. Implementations must treat every
// call as best-effort: a returned error is logged, never retried.
type Handler interface {
	OnTaskCreated(ctx context.Context, task *model.Task) error
	OnTaskUpdated(ctx context.Context, before, after *model.Task) error
	OnReportCreated(ctx context.Context, report *model.Report) error
}

// Watcher listens to Firestore snapshot streams for the task and report
// collections and turns document changes into handler events. Update events
// carry (before, after) pairs reconstructed from a per-document cache; the
// initial snapshot only primes that cache.
type Watcher struct {
	client  *firestore.Client
	handler Handler
	prefix  string

	cancel context.CancelFunc
	doneCh chan struct{}
}

type Option func(*Watcher)

// WithCollectionPrefix prefixes the watched collection names, used to
// isolate test data in a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(w *Watcher) {
		w.prefix = prefix
	}
}

func New(client *firestore.Client, handler Handler, opts ...Option) *Watcher {
	w := &Watcher{
		client:  client,
		handler: handler,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *Watcher) collection(name string) *firestore.CollectionRef {
	if w.prefix != "" {
		return w.client.Collection(w.prefix + "_" + name)
	}
	return w.client.Collection(name)
}

// Start begins watching both collections. Does not block.
func (w *Watcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{}, 2)

	go func() {
		defer func() { w.doneCh <- struct{}{} }()
		w.watch(ctx, tasksCollection, w.streamTasks)
	}()
	go func() {
		defer func() { w.doneCh <- struct{}{} }()
		w.watch(ctx, reportsCollection, w.streamReports)
	}()

	logging.From(ctx).Info("change watcher started",
		"collections", []string{tasksCollection, reportsCollection})
}

// Stop cancels both streams and waits for them to finish
func (w *Watcher) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.doneCh
	<-w.doneCh
	logging.Default().Info("change watcher stopped")
}

// watch restarts a broken snapshot stream with exponential backoff. The
// delay resets once a stream delivers at least one snapshot.
func (w *Watcher) watch(ctx context.Context, name string, stream func(ctx context.Context) (bool, error)) {
	logger := logging.From(ctx)

	for attempt := 0; ; attempt++ {
		delivered, err := stream(ctx)
		if ctx.Err() != nil || status.Code(err) == codes.Canceled {
			return
		}
		if delivered {
			attempt = 0
		}

		delay := restartDelay(attempt)
		logger.Error("snapshot stream failed, restarting",
			"collection", name,
			"error", err.Error(),
			"delay", delay.String(),
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
	}
}

func restartDelay(attempt int) time.Duration {
	delay := time.Second << min(attempt, 5)
	if delay > 30*time.Second {
		delay = 30 * time.Second
	}
	return delay
}

// streamTasks consumes one task snapshot stream until it breaks. It reports
// whether any snapshot was delivered. Each run rebuilds the before-image
// cache from the initial snapshot.
func (w *Watcher) streamTasks(ctx context.Context) (bool, error) {
	logger := logging.From(ctx)
	iter := w.collection(tasksCollection).Snapshots(ctx)
	defer iter.Stop()

	// Before-images for update events. Only this goroutine touches it.
	cache := make(map[string]*model.Task)
	initial := true
	delivered := false

	for {
		snap, err := iter.Next()
		if err != nil {
			return delivered, err
		}
		delivered = true

		for _, change := range snap.Changes {
			switch change.Kind {
			case firestore.DocumentAdded:
				task, err := fsrepo.DecodeTask(change.Doc)
				if err != nil {
					logger.Error("skipping undecodable task document",
						"doc_id", change.Doc.Ref.ID, "error", err.Error())
					continue
				}
				cache[task.ID] = task

				// The first snapshot replays every existing document;
				// those are not creation events.
				if initial {
					continue
				}
				async.Dispatch(ctx, func(ctx context.Context) error {
					return w.handler.OnTaskCreated(ctx, task)
				})

			case firestore.DocumentModified:
				after, err := fsrepo.DecodeTask(change.Doc)
				if err != nil {
					logger.Error("skipping undecodable task document",
						"doc_id", change.Doc.Ref.ID, "error", err.Error())
					continue
				}
				before := cache[after.ID]
				cache[after.ID] = after
				if before == nil {
					continue
				}
				async.Dispatch(ctx, func(ctx context.Context) error {
					return w.handler.OnTaskUpdated(ctx, before, after)
				})

			case firestore.DocumentRemoved:
				delete(cache, change.Doc.Ref.ID)
			}
		}

		initial = false
	}
}

// streamReports consumes one report snapshot stream until it breaks. It
// reports whether any snapshot was delivered.
func (w *Watcher) streamReports(ctx context.Context) (bool, error) {
	logger := logging.From(ctx)
	iter := w.collection(reportsCollection).Snapshots(ctx)
	defer iter.Stop()

	initial := true
	delivered := false

	for {
		snap, err := iter.Next()
		if err != nil {
			return delivered, err
		}
		delivered = true

		for _, change := range snap.Changes {
			if change.Kind != firestore.DocumentAdded || initial {
				continue
			}

			report, err := fsrepo.DecodeReport(change.Doc)
			if err != nil {
				logger.Error("skipping undecodable report document",
					"doc_id", change.Doc.Ref.ID, "error", err.Error())
				continue
			}
			async.Dispatch(ctx, func(ctx context.Context) error {
				return w.handler.OnReportCreated(ctx, report)
			})
		}

		initial = false
	}
}
