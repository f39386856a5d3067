package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"github.com/taskbeacon/taskbeacon/pkg/domain/types"
	"github.com/taskbeacon/taskbeacon/pkg/repository/memory"
	"github.com/taskbeacon/taskbeacon/pkg/service/messaging"
	"github.com/taskbeacon/taskbeacon/pkg/usecase"
)

func TestOnTaskCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies every assignee's device", func(t *testing.T) {
		repo := memory.New()
		seedUser(t, repo, "a@example.com", "tok-a1", "tok-a2")
		seedUser(t, repo, "b@example.com", "tok-b1")

		mock := messaging.NewMock()
		uc := usecase.New(repo, mock)

		gt.NoError(t, uc.Notify.OnTaskCreated(ctx, &model.Task{
			ID:         "t1",
			Title:      "Fix leak",
			Status:     types.TaskStatusAssigned,
			AssignedTo: []string{"a@example.com", "b@example.com"},
		}))

		sent := mock.Sent()
		gt.Array(t, sent).Length(1).Required()
		gt.Array(t, sent[0].Tokens).Length(3).
			Has("tok-a1").Has("tok-a2").Has("tok-b1")
		gt.Value(t, sent[0].Message.Title).Equal("🟡 New Task Assigned")
		gt.Value(t, sent[0].Message.Body).Equal("You have been assigned: Fix leak")
		gt.Value(t, sent[0].Message.Data["type"]).Equal("task_assigned")
		gt.Value(t, sent[0].Message.Data["priority"]).Equal("medium")
		gt.Value(t, sent[0].Message.Data["click_action"]).Equal("FLUTTER_NOTIFICATION_CLICK")
	})

	t.Run("no assignees means no send", func(t *testing.T) {
		mock := messaging.NewMock()
		uc := usecase.New(memory.New(), mock)

		gt.NoError(t, uc.Notify.OnTaskCreated(ctx, &model.Task{ID: "t1", Title: "Orphan"}))
		gt.Array(t, mock.Sent()).Length(0)
	})

	t.Run("assignees without accounts resolve to no send", func(t *testing.T) {
		mock := messaging.NewMock()
		uc := usecase.New(memory.New(), mock)

		gt.NoError(t, uc.Notify.OnTaskCreated(ctx, &model.Task{
			ID:         "t1",
			AssignedTo: []string{"ghost@example.com"},
		}))
		gt.Array(t, mock.Sent()).Length(0)
	})

	t.Run("nil task is tolerated", func(t *testing.T) {
		mock := messaging.NewMock()
		uc := usecase.New(memory.New(), mock)

		gt.NoError(t, uc.Notify.OnTaskCreated(ctx, nil))
		gt.Array(t, mock.Sent()).Length(0)
	})
}

func TestOnTaskUpdated(t *testing.T) {
	ctx := context.Background()

	t.Run("approval notifies assignee devices", func(t *testing.T) {
		repo := memory.New()
		seedUser(t, repo, "a@example.com", "tok-a1")

		mock := messaging.NewMock()
		uc := usecase.New(repo, mock)

		before := &model.Task{ID: "t1", Title: "Fix leak", Status: types.TaskStatusPendingReview, AssignedTo: []string{"a@example.com"}}
		after := &model.Task{ID: "t1", Title: "Fix leak", Status: types.TaskStatusCompleted, AssignedTo: []string{"a@example.com"}}
		gt.NoError(t, uc.Notify.OnTaskUpdated(ctx, before, after))

		sent := mock.Sent()
		gt.Array(t, sent).Length(1).Required()
		gt.Array(t, sent[0].Tokens).Equal([]string{"tok-a1"})
		gt.Value(t, sent[0].Message.Title).Equal("🎉 Task Approved!")
	})

	t.Run("non-status updates never notify", func(t *testing.T) {
		repo := memory.New()
		seedUser(t, repo, "a@example.com", "tok-a1")

		mock := messaging.NewMock()
		uc := usecase.New(repo, mock)

		before := &model.Task{ID: "t1", Title: "Old title", Status: types.TaskStatusInProgress, AssignedTo: []string{"a@example.com"}}
		after := &model.Task{ID: "t1", Title: "New title", Status: types.TaskStatusInProgress, AssignedTo: []string{"a@example.com"}}
		gt.NoError(t, uc.Notify.OnTaskUpdated(ctx, before, after))
		gt.Array(t, mock.Sent()).Length(0)
	})

	t.Run("transport failure does not surface to the event", func(t *testing.T) {
		repo := memory.New()
		seedUser(t, repo, "a@example.com", "tok-a1")

		mock := messaging.NewMock()
		mock.SendError = goerr.New("fcm unreachable")
		uc := usecase.New(repo, mock)

		before := &model.Task{ID: "t1", Status: types.TaskStatusInProgress, AssignedTo: []string{"a@example.com"}}
		after := &model.Task{ID: "t1", Status: types.TaskStatusPendingReview, AssignedTo: []string{"a@example.com"}, CreatedBy: "a@example.com"}
		gt.NoError(t, uc.Notify.OnTaskUpdated(ctx, before, after))
	})
}

func TestOnReportCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies every user of the client", func(t *testing.T) {
		repo := memory.New()
		gt.NoError(t, repo.User().Put(ctx, &model.User{Email: "a@example.com", ClientID: "c1", FCMTokens: []string{"tok-a1"}})).Required()
		gt.NoError(t, repo.User().Put(ctx, &model.User{Email: "b@example.com", ClientID: "c1", FCMTokens: []string{"tok-b1"}})).Required()
		gt.NoError(t, repo.User().Put(ctx, &model.User{Email: "c@example.com", ClientID: "c2", FCMTokens: []string{"tok-c1"}})).Required()
		gt.NoError(t, repo.Client().Put(ctx, &model.Client{ID: "c1", Name: "Acme Corp"})).Required()

		mock := messaging.NewMock()
		uc := usecase.New(repo, mock)

		gt.NoError(t, uc.Notify.OnReportCreated(ctx, &model.Report{ID: "r1", ClientID: "c1"}))

		sent := mock.Sent()
		gt.Array(t, sent).Length(1).Required()
		gt.Array(t, sent[0].Tokens).Length(2).Has("tok-a1").Has("tok-b1")
		gt.Value(t, sent[0].Message.Title).Equal("📋 New Audit Report Available")
		gt.Value(t, sent[0].Message.Body).Equal("A new audit report has been created for Acme Corp")
		gt.Value(t, sent[0].Message.Data["type"]).Equal("report_created")
		gt.Value(t, sent[0].Message.Data["reportId"]).Equal("r1")
		gt.Value(t, sent[0].Message.Data["clientId"]).Equal("c1")
	})

	t.Run("missing client record falls back to a generic name", func(t *testing.T) {
		repo := memory.New()
		gt.NoError(t, repo.User().Put(ctx, &model.User{Email: "a@example.com", ClientID: "c1", FCMTokens: []string{"tok-a1"}})).Required()

		mock := messaging.NewMock()
		uc := usecase.New(repo, mock)

		gt.NoError(t, uc.Notify.OnReportCreated(ctx, &model.Report{ID: "r1", ClientID: "c1"}))

		sent := mock.Sent()
		gt.Array(t, sent).Length(1).Required()
		gt.Value(t, sent[0].Message.Body).Equal("A new audit report has been created for Your company")
	})

	t.Run("client with no users is a no-op", func(t *testing.T) {
		mock := messaging.NewMock()
		uc := usecase.New(memory.New(), mock)

		gt.NoError(t, uc.Notify.OnReportCreated(ctx, &model.Report{ID: "r1", ClientID: "empty"}))
		gt.Array(t, mock.Sent()).Length(0)
	})

	t.Run("nil report is tolerated", func(t *testing.T) {
		mock := messaging.NewMock()
		uc := usecase.New(memory.New(), mock)

		gt.NoError(t, uc.Notify.OnReportCreated(ctx, nil))
		gt.Array(t, mock.Sent()).Length(0)
	})
}
