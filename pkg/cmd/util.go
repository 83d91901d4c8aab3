package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/pseudomuto/groundskeeper/pkg/config"
	"github.com/urfave/cli/v3"
)

// output returns the writer command output goes to. Run sets the writer on
// the root command only; subcommands do not inherit it, so actions resolve
// it through the root.
func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// loadConfig reads the project config named by the global --config flag.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "is this a groundskeeper project? run `groundskeeper init` first")
	}
	return cfg, nil
}

// migrationsDir resolves the configured migrations directory relative to the
// config file's location.
func migrationsDir(cmd *cli.Command, cfg *config.Config) string {
	if filepath.IsAbs(cfg.Dir) {
		return cfg.Dir
	}
	return filepath.Join(filepath.Dir(cmd.String("config")), cfg.Dir)
}

// openAdapter connects to the environment selected by --env.
func openAdapter(ctx context.Context, cmd *cli.Command, cfg *config.Config) (adapter.Adapter, error) {
	env, err := cfg.Environment(cmd.String("env"))
	if err != nil {
		return nil, err
	}

	opts := env.Options()
	opts.Writer = output(cmd)

	db, err := adapter.Open(env.Adapter, opts)
	if err != nil {
		return nil, err
	}

	if err := db.Connect(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
