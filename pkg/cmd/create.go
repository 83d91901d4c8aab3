package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"
	"github.com/pseudomuto/groundskeeper/pkg/consts"
	"github.com/urfave/cli/v3"
)

const migrationStub = `package migrations

import (
	"context"

	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/pseudomuto/groundskeeper/pkg/migrator"
)

var %[1]s = migrator.NewMigration(%[2]d, %[1]q,
	func(ctx context.Context, db adapter.Adapter) error {
		// TODO: apply the change
		return nil
	},
	func(ctx context.Context, db adapter.Adapter) error {
		// TODO: revert the change
		return nil
	},
)
`

// NewCreateCommand creates the create command for generating migration stubs.
//
// Create emits a timestamped Go file in the project's migrations directory
// containing an empty up/down migration pair. Register the resulting value
// with your runner to make it runnable.
//
// Example usage:
//
//	groundskeeper create CreateWidgets
//	groundskeeper create add_price_to_widgets
func NewCreateCommand() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Generate a timestamped migration stub",
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return errors.New("a migration name is required, e.g. `groundskeeper create CreateWidgets`")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			dir := migrationsDir(cmd, cfg)
			if err := os.MkdirAll(dir, consts.ModeDir); err != nil {
				return errors.Wrapf(err, "failed to create %s", dir)
			}

			versionNum, err := strconv.ParseInt(time.Now().UTC().Format("20060102150405"), 10, 64)
			if err != nil {
				return err
			}

			camel := toCamel(name)
			path := filepath.Join(dir, fmt.Sprintf("%d_%s.go", versionNum, toSnake(name)))

			stub := fmt.Sprintf(migrationStub, camel, versionNum)
			if err := os.WriteFile(path, []byte(stub), consts.ModeFile); err != nil {
				return errors.Wrapf(err, "failed to write %s", path)
			}

			fmt.Fprintf(output(cmd), "Created %s\n", path)
			return nil
		},
	}
}

// toCamel converts snake_case or kebab-case to CamelCase; CamelCase input
// passes through.
func toCamel(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' || r == '-' || r == ' ' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// toSnake converts CamelCase to snake_case; snake_case input passes through.
func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '-' || r == ' ':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteRune('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
