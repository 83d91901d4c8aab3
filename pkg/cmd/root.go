package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pseudomuto/groundskeeper/pkg/consts"
	"github.com/pseudomuto/groundskeeper/pkg/migrator"
	"github.com/urfave/cli/v3"

	// Register the built-in engines.
	_ "github.com/pseudomuto/groundskeeper/pkg/adapter/clickhouse"
	_ "github.com/pseudomuto/groundskeeper/pkg/adapter/postgres"
	_ "github.com/pseudomuto/groundskeeper/pkg/adapter/sqlite"
)

type (
	// Version carries build metadata stamped into the binary.
	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}

	// Option customizes the CLI application.
	Option func(*options)

	options struct {
		migrations []migrator.Migration
		writer     io.Writer
	}
)

// WithMigrations registers the migration set the migrate, rollback, and
// status commands operate on.
func WithMigrations(migrations ...migrator.Migration) Option {
	return func(o *options) { o.migrations = migrations }
}

// WithOutput directs command output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// Run creates and executes the groundskeeper CLI application with the given
// version and command-line arguments.
//
// Global Flags:
//   - --config, -c: Project config file (defaults to groundskeeper.yaml)
//   - --env, -e: Environment to run against (defaults to the config's
//     default_environment)
//
// Example usage:
//
//	err := cmd.Run(ctx, cmd.Version{Version: "v1.0.0"}, os.Args,
//	    cmd.WithMigrations(migrations.All()...),
//	)
func Run(ctx context.Context, v Version, args []string, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(output(cmd), "Version:", v.Version)
		fmt.Fprintln(output(cmd), "Commit:", v.Commit)
		fmt.Fprintln(output(cmd), "Date:", v.Timestamp)
	}

	app := &cli.Command{
		Name:  "groundskeeper",
		Usage: "A tool for managing database schema migrations",
		Description: `groundskeeper runs reversible schema migrations against SQLite,
PostgreSQL, and ClickHouse through a single adapter contract, tracking
applied versions in a schema table in the target database.`,
		Version: v.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the groundskeeper config file",
				Sources: cli.EnvVars("GROUNDSKEEPER_CONFIG"),
				Value:   consts.ConfigFile,
			},
			&cli.StringFlag{
				Name:    "env",
				Aliases: []string{"e"},
				Usage:   "the environment to run against",
				Sources: cli.EnvVars("GROUNDSKEEPER_ENV"),
			},
		},
		Commands: []*cli.Command{
			NewInitCommand(),
			NewCreateCommand(),
			NewMigrateCommand(o.migrations),
			NewRollbackCommand(o.migrations),
			NewStatusCommand(o.migrations),
		},
	}

	if o.writer != nil {
		app.Writer = o.writer
	}

	return app.Run(ctx, args)
}
