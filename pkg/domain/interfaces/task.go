package interfaces

import (
	"context"
	"time"

	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
)

// TaskRepository defines the interface for Task data access
type TaskRepository interface {
	// Get retrieves a task by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (*model.Task, error)

	// Put creates or replaces a task document. Tasks are normally written by
	// the client application; this is used for seeding and tests.
	Put(ctx context.Context, task *model.Task) error

	// ListOverdue retrieves tasks whose due date is before now and whose
	// status is still active (assigned, inProgress or pendingReview).
	ListOverdue(ctx context.Context, now time.Time) ([]*model.Task, error)
}

// NotificationRepository defines the interface for stored notification records
type NotificationRepository interface {
	// Put stores a notification record. An empty ID is assigned a new one.
	Put(ctx context.Context, record *model.NotificationRecord) error

	// DeleteOlderThan deletes all records created before cutoff as a single
	// batch and returns the number of deleted records. An empty match set is
	// a no-op. Partial delete failures return the successful count together
	// with an error.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Count returns the number of stored records
	Count(ctx context.Context) (int, error)
}
