package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/taskbeacon/taskbeacon/pkg/domain/interfaces"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"github.com/taskbeacon/taskbeacon/pkg/domain/types"
	"github.com/taskbeacon/taskbeacon/pkg/repository/memory"
)

func runTaskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	t.Run("Put and Get roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		task := &model.Task{
			ID:         "task-1",
			Title:      "Inspect site",
			Status:     types.TaskStatusAssigned,
			Priority:   types.TaskPriorityHigh,
			CreatedBy:  "admin@x.com",
			AssignedTo: []string{"a@x.com", "b@x.com"},
			DueDate:    &future,
			CreatedAt:  now,
		}
		gt.NoError(t, repo.Task().Put(ctx, task)).Required()

		got, err := repo.Task().Get(ctx, "task-1")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("Inspect site")
		gt.Value(t, got.Status).Equal(types.TaskStatusAssigned)
		gt.Array(t, got.AssignedTo).Length(2)
		gt.Bool(t, got.DueDate.Equal(future)).True()
	})

	t.Run("Get returns error for missing task", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Task().Get(ctx, "missing")
		gt.Error(t, err)
	})

	t.Run("ListOverdue returns active past-due tasks only", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Task().Put(ctx, &model.Task{
			ID: "overdue-active", Status: types.TaskStatusInProgress, DueDate: &past,
		})).Required()
		gt.NoError(t, repo.Task().Put(ctx, &model.Task{
			ID: "overdue-done", Status: types.TaskStatusCompleted, DueDate: &past,
		})).Required()
		gt.NoError(t, repo.Task().Put(ctx, &model.Task{
			ID: "not-due", Status: types.TaskStatusAssigned, DueDate: &future,
		})).Required()
		gt.NoError(t, repo.Task().Put(ctx, &model.Task{
			ID: "no-due-date", Status: types.TaskStatusAssigned,
		})).Required()

		tasks, err := repo.Task().ListOverdue(ctx, now)
		gt.NoError(t, err).Required()
		gt.Array(t, tasks).Length(1)
		gt.Value(t, tasks[0].ID).Equal("overdue-active")
	})
}

func TestTaskRepository_Memory(t *testing.T) {
	runTaskRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestTaskRepository_Firestore(t *testing.T) {
	runTaskRepositoryTest(t, newFirestoreRepo)
}
