package usecase

import (
	"fmt"

	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"github.com/taskbeacon/taskbeacon/pkg/domain/types"
)

// transitionRule maps a task arriving at a status to a dispatch intent.
// The optional guard inspects the status the task came from; a rule whose
// guard rejects the before-status produces no notification.
type transitionRule struct {
	guard func(before types.TaskStatus) bool
	build func(task *model.Task) *model.Notice
}

// transitionRules is the closed decision table over task status changes.
// Statuses without an entry (and the creation path, handled separately)
// never notify on update.
var transitionRules = map[types.TaskStatus]transitionRule{
	types.TaskStatusInProgress: {
		build: func(task *model.Task) *model.Notice {
			starter := "Someone"
			if assignees := task.Assignees(); len(assignees) > 0 {
				starter = assignees[0]
			}
			return &model.Notice{
				Recipients: []string{task.CreatedBy},
				Message: &model.Message{
					Title: "▶️ Task Started",
					Body:  fmt.Sprintf("%s started: %s", starter, task.DisplayTitle()),
					Data: map[string]string{
						"taskId": task.ID,
						"type":   types.NotificationTaskStarted.String(),
					},
				},
			}
		},
	},

	types.TaskStatusPendingReview: {
		build: func(task *model.Task) *model.Notice {
			return &model.Notice{
				Recipients: []string{task.CreatedBy},
				Message: &model.Message{
					Title: "✅ Task Submitted for Review",
					Body:  fmt.Sprintf("Task %q has been completed and is awaiting your review", task.DisplayTitle()),
					Data: map[string]string{
						"taskId": task.ID,
						"type":   types.NotificationTaskSubmitted.String(),
					},
				},
			}
		},
	},

	types.TaskStatusCompleted: {
		build: func(task *model.Task) *model.Notice {
			return &model.Notice{
				Recipients: task.Assignees(),
				Message: &model.Message{
					Title: "🎉 Task Approved!",
					Body:  fmt.Sprintf("Great work! Your task %q has been approved", task.DisplayTitle()),
					Data: map[string]string{
						"taskId": task.ID,
						"type":   types.NotificationTaskApproved.String(),
					},
				},
			}
		},
	},

	// A task moving back to assigned is a rejection only when it came out
	// of review; any other path into assigned is silent.
	types.TaskStatusAssigned: {
		guard: func(before types.TaskStatus) bool {
			return before == types.TaskStatusPendingReview
		},
		build: func(task *model.Task) *model.Notice {
			body := fmt.Sprintf("Your task %q needs changes", task.DisplayTitle())
			if task.AdminComments != "" {
				body += fmt.Sprintf(". Reason: %s", task.AdminComments)
			}
			return &model.Notice{
				Recipients: task.Assignees(),
				Message: &model.Message{
					Title: "⚠️ Task Needs Revision",
					Body:  body,
					Data: map[string]string{
						"taskId": task.ID,
						"type":   types.NotificationTaskRejected.String(),
					},
				},
			}
		},
	},

	types.TaskStatusIncomplete: {
		build: func(task *model.Task) *model.Notice {
			body := fmt.Sprintf("Task %q has been marked as incomplete", task.DisplayTitle())
			if task.AdminComments != "" {
				body += fmt.Sprintf(". Reason: %s", task.AdminComments)
			}
			return &model.Notice{
				Recipients: task.Assignees(),
				Message: &model.Message{
					Title: "❌ Task Marked Incomplete",
					Body:  body,
					Data: map[string]string{
						"taskId": task.ID,
						"type":   types.NotificationTaskIncomplete.String(),
					},
				},
			}
		},
	},
}

// planTransition evaluates the decision table for a status change and
// returns the dispatch intent, or nil when no notification is due.
// Identical before/after statuses never notify.
func planTransition(before, after *model.Task) *model.Notice {
	if before == nil || after == nil {
		return nil
	}
	if before.Status == after.Status {
		return nil
	}

	rule, ok := transitionRules[after.Status]
	if !ok {
		return nil
	}
	if rule.guard != nil && !rule.guard(before.Status) {
		return nil
	}

	return rule.build(after)
}

// planCreation returns the dispatch intent for a newly created task, or nil
// when the task has no assignees.
func planCreation(task *model.Task) *model.Notice {
	if task == nil || len(task.Assignees()) == 0 {
		return nil
	}

	priority := task.Priority.Normalize()
	return &model.Notice{
		Recipients: task.Assignees(),
		Message: &model.Message{
			Title: fmt.Sprintf("%s New Task Assigned", priority.Marker()),
			Body:  fmt.Sprintf("You have been assigned: %s", task.DisplayTitle()),
			Data: map[string]string{
				"taskId":   task.ID,
				"type":     types.NotificationTaskAssigned.String(),
				"priority": priority.String(),
			},
		},
	}
}
