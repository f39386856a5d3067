package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"github.com/taskbeacon/taskbeacon/pkg/domain/types"
	"github.com/taskbeacon/taskbeacon/pkg/utils/errutil"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
)

// fallbackClientName is used when the client record cannot be read
const fallbackClientName = "Your company"

// dispatch resolves a notice's recipients and performs the multicast send.
// Recipients with empty emails are dropped; an empty recipient set skips
// resolution entirely.
func (uc *NotifyUseCase) dispatch(ctx context.Context, notice *model.Notice) {
	recipients := lo.Filter(notice.Recipients, func(email string, _ int) bool {
		return email != ""
	})
	if len(recipients) == 0 {
		logging.From(ctx).Info("no recipients to notify")
		return
	}

	tokens := uc.resolveTokens(ctx, recipients)
	uc.sendPush(ctx, tokens, notice.Message)
}

// OnTaskCreated notifies all assignees of a newly created task
func (uc *NotifyUseCase) OnTaskCreated(ctx context.Context, task *model.Task) error {
	logger := logging.From(ctx)

	if task == nil {
		logger.Error("task document is nil")
		return nil
	}

	logger.Info("task created",
		"id", task.ID,
		"title", task.DisplayTitle(),
		"assignees", task.Assignees(),
	)

	notice := planCreation(task)
	if notice == nil {
		logger.Info("no assignees for this task, skipping notification", "id", task.ID)
		return nil
	}

	uc.dispatch(ctx, notice)
	return nil
}

// OnTaskUpdated evaluates the status-transition decision table for an
// updated task and notifies accordingly. Updates that leave the status
// unchanged never notify.
func (uc *NotifyUseCase) OnTaskUpdated(ctx context.Context, before, after *model.Task) error {
	logger := logging.From(ctx)

	if before == nil || after == nil {
		logger.Error("task snapshot is nil")
		return nil
	}

	logger.Info("task updated",
		"id", after.ID,
		"before", before.Status,
		"after", after.Status,
	)

	notice := planTransition(before, after)
	if notice == nil {
		logger.Info("status change requires no notification", "id", after.ID)
		return nil
	}

	uc.dispatch(ctx, notice)
	return nil
}

// OnReportCreated notifies every user belonging to the report's client.
// A missing client record falls back to a generic company name instead of
// failing the notification.
func (uc *NotifyUseCase) OnReportCreated(ctx context.Context, report *model.Report) error {
	logger := logging.From(ctx)

	if report == nil {
		logger.Error("report document is nil")
		return nil
	}

	logger.Info("report created", "id", report.ID, "clientId", report.ClientID)

	users, err := uc.repo.User().ListByClientID(ctx, report.ClientID)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to list users for client")
		return nil
	}
	if len(users) == 0 {
		logger.Info("no users found for this client", "clientId", report.ClientID)
		return nil
	}

	clientName := fallbackClientName
	if client, err := uc.repo.Client().Get(ctx, report.ClientID); err != nil {
		logger.Warn("failed to get client name, using fallback",
			"clientId", report.ClientID,
			"error", err.Error(),
		)
	} else if client.Name != "" {
		clientName = client.Name
	}

	emails := lo.Map(users, func(u *model.User, _ int) string {
		return u.Email
	})

	uc.dispatch(ctx, &model.Notice{
		Recipients: emails,
		Message: &model.Message{
			Title: "📋 New Audit Report Available",
			Body:  fmt.Sprintf("A new audit report has been created for %s", clientName),
			Data: map[string]string{
				"reportId": report.ID,
				"type":     types.NotificationReportCreated.String(),
				"clientId": report.ClientID,
			},
		},
	})
	return nil
}
