package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/cli/config"
	"github.com/taskbeacon/taskbeacon/pkg/usecase"
	"github.com/taskbeacon/taskbeacon/pkg/utils/logging"
	"github.com/taskbeacon/taskbeacon/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// cmdCleanup runs the stale-notification cleanup once and exits
func cmdCleanup() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:  "cleanup",
		Usage: "Delete notification records older than the retention window",
		Flags: repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, nil)
			deleted, err := uc.Maintenance.CleanupOldNotifications(ctx)
			if err != nil {
				return err
			}

			logging.Default().Info("cleanup finished", "deleted", deleted)
			return nil
		},
	}
}
