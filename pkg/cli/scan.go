package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/taskbeacon/taskbeacon/pkg/cli/config"
	"github.com/taskbeacon/taskbeacon/pkg/usecase"
	"github.com/taskbeacon/taskbeacon/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// cmdScan runs the overdue-task scan once and exits
func cmdScan() *cli.Command {
	var repoCfg config.Repository
	var msgCfg config.Messaging

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, msgCfg.Flags()...)

	return &cli.Command{
		Name:  "scan",
		Usage: "Run the overdue-task scan once",
		Flags: flags,
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

			uc := usecase.New(repo, messenger)
			return uc.Notify.CheckOverdueTasks(ctx)
		},
	}
}
