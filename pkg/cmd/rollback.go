package cmd

import (
	"context"

	"github.com/pseudomuto/groundskeeper/pkg/migrator"
	"github.com/urfave/cli/v3"
)

// NewRollbackCommand creates the rollback command for reverting applied
// migrations.
//
// Command flags:
//   - --target, -t: Revert versions above this one (0 reverts everything)
//
// Rolling back stops at the first version carrying a breakpoint.
//
// Example usage:
//
//	groundskeeper rollback --target 20260830120000
func NewRollbackCommand(migrations []migrator.Migration) *cli.Command {
	return &cli.Command{
		Name:  "rollback",
		Usage: "Revert applied migrations",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "revert migrations above this version (0 = all)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			db, err := openAdapter(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Disconnect(ctx) }()

			runner, err := migrator.NewRunner(db, migrations, migrator.WithWriter(output(cmd)))
			if err != nil {
				return err
			}

			return runner.Rollback(ctx, int64(cmd.Int("target")))
		},
	}
}
