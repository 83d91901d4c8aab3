package cmd

import (
	"context"

	"github.com/pseudomuto/groundskeeper/pkg/migrator"
	"github.com/urfave/cli/v3"
)

// NewMigrateCommand creates the migrate command for applying pending
// migrations.
//
// Command flags:
//   - --target, -t: Stop after this version (0 applies everything)
//
// Example usage:
//
//	groundskeeper migrate
//	groundskeeper --env production migrate --target 20260830120000
func NewMigrateCommand(migrations []migrator.Migration) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending migrations",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "apply migrations up to and including this version (0 = all)",
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

			return runner.Migrate(ctx, int64(cmd.Int("target")))
		},
	}
}
