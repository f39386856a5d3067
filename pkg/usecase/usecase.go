package usecase

import (
	"time"

	"github.com/taskbeacon/taskbeacon/pkg/domain/interfaces"
	"github.com/taskbeacon/taskbeacon/pkg/service/messaging"
)

type UseCases struct {
	repo      interfaces.Repository
	messenger messaging.Service
	now       func() time.Time

	Notify      *NotifyUseCase
	Maintenance *MaintenanceUseCase
}

type Option func(*UseCases)

// WithClock overrides the time source, used by tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, messenger messaging.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:      repo,
		messenger: messenger,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Notify = &NotifyUseCase{repo: repo, messenger: messenger, now: uc.now}
	uc.Maintenance = &MaintenanceUseCase{repo: repo, now: uc.now}

	return uc
}
