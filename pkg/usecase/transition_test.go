package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"github.com/taskbeacon/taskbeacon/pkg/domain/types"
	"github.com/taskbeacon/taskbeacon/pkg/usecase"
)

func taskAt(status types.TaskStatus) *model.Task {
	return &model.Task{
		ID:         "t1",
		Title:      "Fix leak",
		Status:     status,
		CreatedBy:  "admin@example.com",
		AssignedTo: []string{"a@example.com", "b@example.com"},
	}
}

func TestPlanTransition(t *testing.T) {
	t.Run("unchanged status never notifies", func(t *testing.T) {
		for _, status := range types.AllTaskStatuses() {
			gt.Value(t, usecase.PlanTransition(taskAt(status), taskAt(status))).Nil()
		}
	})

	t.Run("nil snapshots never notify", func(t *testing.T) {
		gt.Value(t, usecase.PlanTransition(nil, taskAt(types.TaskStatusCompleted))).Nil()
		gt.Value(t, usecase.PlanTransition(taskAt(types.TaskStatusAssigned), nil)).Nil()
	})

	t.Run("started notifies the creator", func(t *testing.T) {
		notice := usecase.PlanTransition(taskAt(types.TaskStatusAssigned), taskAt(types.TaskStatusInProgress))
		gt.Value(t, notice).NotNil().Required()
		gt.Array(t, notice.Recipients).Equal([]string{"admin@example.com"})
		gt.Value(t, notice.Message.Title).Equal("▶️ Task Started")
		gt.Value(t, notice.Message.Body).Equal(`a@example.com started: Fix leak`)
		gt.Value(t, notice.Message.Data["type"]).Equal("task_started")
		gt.Value(t, notice.Message.Data["taskId"]).Equal("t1")
	})

	t.Run("started without assignees names someone", func(t *testing.T) {
		after := taskAt(types.TaskStatusInProgress)
		after.AssignedTo = nil
		notice := usecase.PlanTransition(taskAt(types.TaskStatusAssigned), after)
		gt.Value(t, notice).NotNil().Required()
		gt.Value(t, notice.Message.Body).Equal("Someone started: Fix leak")
	})

	t.Run("submitted for review notifies the creator", func(t *testing.T) {
		notice := usecase.PlanTransition(taskAt(types.TaskStatusInProgress), taskAt(types.TaskStatusPendingReview))
		gt.Value(t, notice).NotNil().Required()
		gt.Array(t, notice.Recipients).Equal([]string{"admin@example.com"})
		gt.Value(t, notice.Message.Title).Equal("✅ Task Submitted for Review")
		gt.Value(t, notice.Message.Data["type"]).Equal("task_submitted")
	})

	t.Run("approved notifies the assignees", func(t *testing.T) {
		notice := usecase.PlanTransition(taskAt(types.TaskStatusPendingReview), taskAt(types.TaskStatusCompleted))
		gt.Value(t, notice).NotNil().Required()
		gt.Array(t, notice.Recipients).Equal([]string{"a@example.com", "b@example.com"})
		gt.Value(t, notice.Message.Title).Equal("🎉 Task Approved!")
		gt.Value(t, notice.Message.Data["type"]).Equal("task_approved")
	})

	t.Run("rejection only when coming out of review", func(t *testing.T) {
		notice := usecase.PlanTransition(taskAt(types.TaskStatusPendingReview), taskAt(types.TaskStatusAssigned))
		gt.Value(t, notice).NotNil().Required()
		gt.Array(t, notice.Recipients).Equal([]string{"a@example.com", "b@example.com"})
		gt.Value(t, notice.Message.Title).Equal("⚠️ Task Needs Revision")
		gt.Value(t, notice.Message.Body).Equal(`Your task "Fix leak" needs changes`)
		gt.Value(t, notice.Message.Data["type"]).Equal("task_rejected")

		for _, before := range []types.TaskStatus{
			types.TaskStatusInProgress,
			types.TaskStatusCompleted,
			types.TaskStatusIncomplete,
		} {
			gt.Value(t, usecase.PlanTransition(taskAt(before), taskAt(types.TaskStatusAssigned))).Nil()
		}
	})

	t.Run("rejection includes admin comments", func(t *testing.T) {
		after := taskAt(types.TaskStatusAssigned)
		after.AdminComments = "missing logs"
		notice := usecase.PlanTransition(taskAt(types.TaskStatusPendingReview), after)
		gt.Value(t, notice).NotNil().Required()
		gt.Value(t, notice.Message.Body).Equal(`Your task "Fix leak" needs changes. Reason: missing logs`)
	})

	t.Run("incomplete notifies the assignees from any status", func(t *testing.T) {
		for _, before := range []types.TaskStatus{
			types.TaskStatusAssigned,
			types.TaskStatusInProgress,
			types.TaskStatusPendingReview,
			types.TaskStatusCompleted,
		} {
			after := taskAt(types.TaskStatusIncomplete)
			after.AdminComments = "never delivered"
			notice := usecase.PlanTransition(taskAt(before), after)
			gt.Value(t, notice).NotNil().Required()
			gt.Array(t, notice.Recipients).Equal([]string{"a@example.com", "b@example.com"})
			gt.Value(t, notice.Message.Title).Equal("❌ Task Marked Incomplete")
			gt.Value(t, notice.Message.Body).Equal(`Task "Fix leak" has been marked as incomplete. Reason: never delivered`)
			gt.Value(t, notice.Message.Data["type"]).Equal("task_incomplete")
		}
	})

	t.Run("untitled tasks get a placeholder", func(t *testing.T) {
		after := taskAt(types.TaskStatusPendingReview)
		after.Title = ""
		notice := usecase.PlanTransition(taskAt(types.TaskStatusInProgress), after)
		gt.Value(t, notice).NotNil().Required()
		gt.Value(t, notice.Message.Body).Equal(`Task "Untitled" has been completed and is awaiting your review`)
	})
}

func TestPlanCreation(t *testing.T) {
	t.Run("notifies all assignees with priority marker", func(t *testing.T) {
		task := taskAt(types.TaskStatusAssigned)
		task.Priority = types.TaskPriorityHigh
		notice := usecase.PlanCreation(task)
		gt.Value(t, notice).NotNil().Required()
		gt.Array(t, notice.Recipients).Equal([]string{"a@example.com", "b@example.com"})
		gt.Value(t, notice.Message.Title).Equal("🔴 New Task Assigned")
		gt.Value(t, notice.Message.Body).Equal("You have been assigned: Fix leak")
		gt.Value(t, notice.Message.Data["type"]).Equal("task_assigned")
		gt.Value(t, notice.Message.Data["priority"]).Equal("high")
	})

	t.Run("missing priority defaults to medium", func(t *testing.T) {
		task := taskAt(types.TaskStatusAssigned)
		task.Priority = ""
		notice := usecase.PlanCreation(task)
		gt.Value(t, notice).NotNil().Required()
		gt.Value(t, notice.Message.Title).Equal("🟡 New Task Assigned")
		gt.Value(t, notice.Message.Data["priority"]).Equal("medium")
	})

	t.Run("unknown priority defaults to medium", func(t *testing.T) {
		task := taskAt(types.TaskStatusAssigned)
		task.Priority = "urgent"
		notice := usecase.PlanCreation(task)
		gt.Value(t, notice).NotNil().Required()
		gt.Value(t, notice.Message.Title).Equal("🟡 New Task Assigned")
	})

	t.Run("no assignees means no notification", func(t *testing.T) {
		task := taskAt(types.TaskStatusAssigned)
		task.AssignedTo = nil
		gt.Value(t, usecase.PlanCreation(task)).Nil()
		gt.Value(t, usecase.PlanCreation(nil)).Nil()
	})
}
