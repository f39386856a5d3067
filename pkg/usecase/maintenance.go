package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/domain/interfaces"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
)

// notificationRetention is how long stored notification records are kept
const notificationRetention = 30 * 24 * time.Hour

// MaintenanceUseCase performs periodic housekeeping. No dispatch involved.
type MaintenanceUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

// CleanupOldNotifications deletes notification records older than the
// retention window in one batch and returns the number deleted.
func (uc *MaintenanceUseCase) CleanupOldNotifications(ctx context.Context) (int, error) {
	logger := logging.From(ctx)
	cutoff := uc.now().Add(-notificationRetention)

	deleted, err := uc.repo.Notification().DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete stale notification records")
	}

	if deleted == 0 {
		logger.Info("no stale notification records to delete")
	} else {
		logger.Info("deleted stale notification records", "count", deleted)
	}

	return deleted, nil
}
