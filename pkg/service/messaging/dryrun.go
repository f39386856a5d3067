package messaging

import (
	"context"

	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
)

type dryRunClient struct{}

var _ Service = &dryRunClient{}

// NewDryRun creates a transport that logs sends instead of delivering them.
// Useful for local development without FCM credentials.
func NewDryRun() Service {
	return &dryRunClient{}
}

func (c *dryRunClient) SendMulticast(ctx context.Context, tokens []string, msg *model.Message) (*model.MulticastResult, error) {
	logging.From(ctx).Info("dry-run multicast send",
		"tokens", len(tokens),
		"title", msg.Title,
		"body", msg.Body,
		"data", msg.Data,
	)

	result := &model.MulticastResult{
		SuccessCount: len(tokens),
		Responses:    make([]model.SendResult, len(tokens)),
	}
	for i := range result.Responses {
		result.Responses[i].Success = true
	}

	return result, nil
}
