package messaging

import (
	"context"

	"github.com/taskbeacon/taskbeacon/pkg/domain/model"
)

// Service is the push delivery transport. One call performs a single
// multicast attempt; the per-token breakdown is returned on success, and a
// transport-level failure rejects the whole call.
type Service interface {
	SendMulticast(ctx context.Context, tokens []string, msg *model.Message) (*model.MulticastResult, error)
}
