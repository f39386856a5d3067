package usecase

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/taskbeacon/taskbeacon/pkg/domain/interfaces"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"github.com/taskbeacon/taskbeacon/pkg/service/messaging"
	"github.com/taskbeacon/taskbeacon/pkg/utils/errutil"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Routing marker expected by the mobile client on every data payload
const (
	clickActionKey   = "click_action"
	clickActionValue = "FLUTTER_NOTIFICATION_CLICK"
)

// NotifyUseCase reacts to task and report events by resolving recipients to
// device tokens and dispatching multicast push notifications. Nothing in
// this path propagates a failure back to the triggering event.
type NotifyUseCase struct {
	repo      interfaces.Repository
	messenger messaging.Service
	now       func() time.Time
}

// resolveTokens maps user emails to a deduplicated set of FCM tokens.
// Lookups run concurrently; a failed or missing lookup contributes zero
// tokens without affecting the other emails. Empty emails are dropped.
func (uc *NotifyUseCase) resolveTokens(ctx context.Context, emails []string) []string {
	logger := logging.From(ctx)

	valid := lo.Filter(emails, func(email string, _ int) bool {
		return email != ""
	})
	if len(valid) == 0 {
		logger.Warn("no user emails provided")
		return nil
	}

	results := make([][]string, len(valid))
	var eg errgroup.Group
	for i, email := range valid {
		eg.Go(func() error {
			user, err := uc.repo.User().GetByEmail(ctx, email)
			if err != nil {
				// Lookup miss or transient failure: zero contribution,
				// never abort resolution for the other emails
				logger.Warn("failed to resolve tokens for user",
					"email", email,
					"error", err.Error(),
				)
				return nil
			}

			if len(user.FCMTokens) == 0 {
				logger.Info("no FCM tokens registered for user", "email", email)
				return nil
			}

			results[i] = user.FCMTokens
			return nil
		})
	}
	_ = eg.Wait()

	tokens := lo.Uniq(lo.Flatten(results))
	logger.Info("resolved device tokens", "emails", len(valid), "tokens", len(tokens))

	return tokens
}

// sendPush performs one multicast attempt. An empty token set is a no-op.
// Transport failures are logged and yield a nil result; partial failures
// are logged per token. The caller never receives an error.
func (uc *NotifyUseCase) sendPush(ctx context.Context, tokens []string, msg *model.Message) *model.MulticastResult {
	logger := logging.From(ctx)

	if len(tokens) == 0 {
		logger.Info("no FCM tokens to send notification to")
		return nil
	}

	data := make(map[string]string, len(msg.Data)+1)
	for k, v := range msg.Data {
		data[k] = v
	}
	data[clickActionKey] = clickActionValue

	result, err := uc.messenger.SendMulticast(ctx, tokens, &model.Message{
		Title: msg.Title,
		Body:  msg.Body,
		Data:  data,
	})
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to send push notification")
		return nil
	}

	logger.Info("push notification sent",
		"title", msg.Title,
		"success", result.SuccessCount,
		"failure", result.FailureCount,
	)

	for i, resp := range result.Responses {
		if !resp.Success {
			logger.Error("failed to deliver to token", "index", i, "cause", resp.Error)
		}
	}

	return result
}
