package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
)

type notificationRepository struct {
	mu      sync.RWMutex
	records map[string]*model.NotificationRecord
}

func newNotificationRepository() *notificationRepository {
	return &notificationRepository{
		records: make(map[string]*model.NotificationRecord),
	}
}

func (r *notificationRepository) Put(ctx context.Context, record *model.NotificationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *record
	if copied.ID == "" {
		copied.ID = uuid.NewString()
	}
	r.records[copied.ID] = &copied
	return nil
}

func (r *notificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for id, rec := range r.records {
		if rec.CreatedAt.Before(cutoff) {
			delete(r.records, id)
			deleted++
		}
	}

	return deleted, nil
}

func (r *notificationRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records), nil
}
