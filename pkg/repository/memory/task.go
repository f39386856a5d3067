package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
)

type taskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*model.Task
}

func newTaskRepository() *taskRepository {
	return &taskRepository{
		tasks: make(map[string]*model.Task),
	}
}

func copyTask(t *model.Task) *model.Task {
	copied := &model.Task{
		ID:            t.ID,
		Title:         t.Title,
		Status:        t.Status,
		Priority:      t.Priority,
		CreatedBy:     t.CreatedBy,
		AdminComments: t.AdminComments,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if t.AssignedTo != nil {
		copied.AssignedTo = make([]string, len(t.AssignedTo))
		copy(copied.AssignedTo, t.AssignedTo)
	}
	if t.DueDate != nil {
		due := *t.DueDate
		copied.DueDate = &due
	}
	return copied
}

func (r *taskRepository) Get(ctx context.Context, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, exists := r.tasks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "task not found", goerr.V("id", id))
	}

	return copyTask(task), nil
}

func (r *taskRepository) Put(ctx context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyTask(task)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.tasks[stored.ID] = stored
	return nil
}

func (r *taskRepository) ListOverdue(ctx context.Context, now time.Time) ([]*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var overdue []*model.Task
	for _, t := range r.tasks {
		if t.DueDate == nil || !t.DueDate.Before(now) {
			continue
		}
		if !t.Status.IsActive() {
			continue
		}
		overdue = append(overdue, copyTask(t))
	}

	return overdue, nil
}
