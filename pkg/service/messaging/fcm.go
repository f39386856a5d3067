package messaging

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
	"google.golang.org/api/option"
)

type fcmClient struct {
	client *messaging.Client
}

var _ Service = &fcmClient{}

// NewFCM creates a Firebase Cloud Messaging transport. When credentialsFile
// is empty, Application Default Credentials are used.
func NewFCM(ctx context.Context, projectID, credentialsFile string) (Service, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize firebase app", goerr.V("projectID", projectID))
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create messaging client")
	}

	return &fcmClient{client: client}, nil
}

func (c *fcmClient) SendMulticast(ctx context.Context, tokens []string, msg *model.Message) (*model.MulticastResult, error) {
	resp, err := c.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to send multicast message", goerr.V("tokens", len(tokens)))
	}

	result := &model.MulticastResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
		Responses:    make([]model.SendResult, len(resp.Responses)),
	}
	for i, r := range resp.Responses {
		result.Responses[i].Success = r.Success
		if r.Error != nil {
			result.Responses[i].Error = r.Error.Error()
		}
	}

	return result, nil
}
