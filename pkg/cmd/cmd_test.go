package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/pseudomuto/groundskeeper/pkg/migrator"
	"github.com/pseudomuto/groundskeeper/pkg/schema"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestInitCommand(t *testing.T) {
	ctx := context.Background()
	configPath := filepath.Join(t.TempDir(), "groundskeeper.yaml")

	var out bytes.Buffer
	err := Run(ctx, Version{}, []string{"groundskeeper", "--config", configPath, "init"}, WithOutput(&out))
	require.NoError(t, err)

	require.FileExists(t, configPath)
	require.DirExists(t, filepath.Join(filepath.Dir(configPath), "db", "migrations"))
	require.Contains(t, out.String(), "Created "+configPath)

	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	golden.Assert(t, string(content), "groundskeeper.yaml.golden")

	// A second init refuses to clobber the config.
	err = Run(ctx, Version{}, []string{"groundskeeper", "--config", configPath, "init"}, WithOutput(&out))
	require.ErrorContains(t, err, "already exists")
}

func TestCreateCommand(t *testing.T) {
	ctx := context.Background()
	configPath := filepath.Join(t.TempDir(), "groundskeeper.yaml")

	var out bytes.Buffer
	require.NoError(t, Run(ctx, Version{}, []string{"groundskeeper", "--config", configPath, "init"}, WithOutput(&out)))
	require.NoError(t, Run(ctx, Version{}, []string{"groundskeeper", "--config", configPath, "create", "create_widgets"}, WithOutput(&out)))

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(configPath), "db", "migrations", "*_create_widgets.go"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	stub, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	require.Contains(t, string(stub), "var CreateWidgets = migrator.NewMigration(")
	require.Contains(t, string(stub), "package migrations")

	err = Run(ctx, Version{}, []string{"groundskeeper", "--config", configPath, "create"}, WithOutput(&out))
	require.ErrorContains(t, err, "a migration name is required")
}

func TestCreateCommandWithoutProject(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "groundskeeper.yaml")

	err := Run(context.Background(), Version{}, []string{"groundskeeper", "--config", configPath, "create", "CreateWidgets"}, WithOutput(&bytes.Buffer{}))
	require.ErrorContains(t, err, "is this a groundskeeper project?")
}

func TestMigrateRollbackStatus(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	configPath := filepath.Join(dir, "groundskeeper.yaml")
	dbPath := filepath.Join(dir, "test.sqlite3")

	configYAML := fmt.Sprintf("environments:\n  development:\n    adapter: sqlite\n    dsn: %s\n", dbPath)
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0o644))

	migrations := []migrator.Migration{
		migrator.NewMigration(1, "CreateWidgets",
			func(ctx context.Context, db adapter.Adapter) error {
				return db.CreateTable(ctx, schema.Table{
					Name:    "widgets",
					Columns: []schema.Column{{Name: "name", Type: schema.TypeString, Null: true}},
				})
			},
			func(ctx context.Context, db adapter.Adapter) error {
				return db.DropTable(ctx, "widgets")
			},
		),
		migrator.NewMigration(2, "CreateSprockets",
			func(ctx context.Context, db adapter.Adapter) error {
				return db.CreateTable(ctx, schema.Table{
					Name:    "sprockets",
					Columns: []schema.Column{{Name: "name", Type: schema.TypeString, Null: true}},
				})
			},
			func(ctx context.Context, db adapter.Adapter) error {
				return db.DropTable(ctx, "sprockets")
			},
		),
	}

	args := func(rest ...string) []string {
		return append([]string{"groundskeeper", "--config", configPath}, rest...)
	}

	var out bytes.Buffer
	require.NoError(t, Run(ctx, Version{}, args("migrate", "--target", "1"), WithMigrations(migrations...), WithOutput(&out)))
	require.Contains(t, out.String(), "== 1 CreateWidgets: migrated")
	require.NotContains(t, out.String(), "CreateSprockets")

	out.Reset()
	require.NoError(t, Run(ctx, Version{}, args("migrate"), WithMigrations(migrations...), WithOutput(&out)))
	require.Contains(t, out.String(), "== 2 CreateSprockets: migrated")

	// Both tables exist in the database the config points at.
	db, err := adapter.Open("sqlite", adapter.Options{DSN: dbPath})
	require.NoError(t, err)
	require.NoError(t, db.Connect(ctx))
	t.Cleanup(func() { _ = db.Disconnect(ctx) })

	for _, table := range []string{"widgets", "sprockets"} {
		exists, err := db.HasTable(ctx, table)
		require.NoError(t, err)
		require.True(t, exists, table)
	}

	out.Reset()
	require.NoError(t, Run(ctx, Version{}, args("status"), WithMigrations(migrations...), WithOutput(&out)))
	require.Contains(t, out.String(), "applied")
	require.Contains(t, out.String(), "CreateSprockets")

	out.Reset()
	require.NoError(t, Run(ctx, Version{}, args("rollback", "--target", "1"), WithMigrations(migrations...), WithOutput(&out)))

	exists, err := db.HasTable(ctx, "sprockets")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = db.HasTable(ctx, "widgets")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestNameConversions(t *testing.T) {
	tests := []struct {
		in    string
		camel string
		snake string
	}{
		{in: "create_widgets", camel: "CreateWidgets", snake: "create_widgets"},
		{in: "CreateWidgets", camel: "CreateWidgets", snake: "create_widgets"},
		{in: "add-price-to-widgets", camel: "AddPriceToWidgets", snake: "add_price_to_widgets"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.camel, toCamel(tt.in))
			require.Equal(t, tt.snake, toSnake(tt.in))
		})
	}
}
