package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"github.com/taskbeacon/taskbeacon/pkg/domain/types"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// CheckOverdueTasks scans for tasks past their due date that are still
// active and reminds their assignees. Per-task processing is fanned out
// concurrently and joined before returning; one task's failure never blocks
// the others.
func (uc *NotifyUseCase) CheckOverdueTasks(ctx context.Context) error {
	logger := logging.From(ctx)
	now := uc.now()

	tasks, err := uc.repo.Task().ListOverdue(ctx, now)
	if err != nil {
		return goerr.Wrap(err, "failed to query overdue tasks")
	}

	if len(tasks) == 0 {
		logger.Info("no overdue tasks found")
		return nil
	}

	logger.Info("found overdue tasks", "count", len(tasks))

	var eg errgroup.Group
	for _, task := range tasks {
		eg.Go(func() error {
			uc.notifyOverdue(ctx, task)
			return nil
		})
	}
	_ = eg.Wait()

	logger.Info("overdue task notifications sent")
	return nil
}

func (uc *NotifyUseCase) notifyOverdue(ctx context.Context, task *model.Task) {
	logger := logging.From(ctx)
	logger.Info("overdue task", "id", task.ID, "title", task.DisplayTitle())

	if len(task.Assignees()) == 0 {
		logger.Info("no assignees for overdue task", "id", task.ID)
		return
	}

	daysOverdue := task.DaysOverdue(uc.now())

	uc.dispatch(ctx, &model.Notice{
		Recipients: task.Assignees(),
		Message: &model.Message{
			Title: "⏰ Task Overdue!",
			Body:  fmt.Sprintf("Your task %q is %d day(s) overdue", task.DisplayTitle(), daysOverdue),
			Data: map[string]string{
				"taskId":      task.ID,
				"type":        types.NotificationTaskOverdue.String(),
				"daysOverdue": strconv.Itoa(daysOverdue),
			},
		},
	})
}
