package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/cli/config"
	"github.com/taskbeacon/taskbeacon/pkg/controller/watcher"
	fsrepo "github.com/taskbeacon/taskbeacon/pkg/repository/firestore"
	"github.com/taskbeacon/taskbeacon/pkg/service/worker"
	"github.com/taskbeacon/taskbeacon/pkg/usecase"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
	"github.com/taskbeacon/taskbeacon/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var repoCfg config.Repository
	var msgCfg config.Messaging
	var schedCfg config.Schedule

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, msgCfg.Flags()...)
	flags = append(flags, schedCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Watch for document changes and run the scheduled scans",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			messenger, err := msgCfg.Configure(ctx, repoCfg.ProjectID())
			if err != nil {
				return goerr.Wrap(err, "failed to initialize push transport")
			}

			overdueSched, cleanupSched, err := schedCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to resolve scan schedules")
			}

			uc := usecase.New(repo, messenger)

			// The change watcher needs the raw Firestore client; the memory
			// backend only runs the scheduled scans.
			var w *watcher.Watcher
			if fs, ok := repo.(*fsrepo.Firestore); ok {
				w = watcher.New(fs.Raw(), uc.Notify)
				w.Start(ctx)
			} else {
				logging.Default().Warn("change watcher disabled: repository backend has no change stream")
			}

			overdueWorker := worker.New("overdue-scan", overdueSched, uc.Notify.CheckOverdueTasks)
			overdueWorker.Start(ctx)

			cleanupWorker := worker.New("notification-cleanup", cleanupSched, func(ctx context.Context) error {
				_, err := uc.Maintenance.CleanupOldNotifications(ctx)
				return err
			})
			cleanupWorker.Start(ctx)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)
			case <-ctx.Done():
				logging.Default().Info("Context cancelled")
			}

			overdueWorker.Stop()
			cleanupWorker.Stop()
			if w != nil {
				w.Stop()
			}

			logging.Default().Info("Shutdown completed")
			return nil
		},
	}
}
