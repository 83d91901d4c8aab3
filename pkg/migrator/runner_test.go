package migrator_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	_ "github.com/pseudomuto/groundskeeper/pkg/adapter/sqlite"
	"github.com/pseudomuto/groundskeeper/pkg/migrator"
	"github.com/pseudomuto/groundskeeper/pkg/schema"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) adapter.Adapter {
	t.Helper()

	db, err := adapter.Open("sqlite", adapter.Options{DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Connect(context.Background()))

	t.Cleanup(func() { _ = db.Disconnect(context.Background()) })
	return db
}

func createTableMigration(version int64, name, table string) migrator.Migration {
	return migrator.NewMigration(version, name,
		func(ctx context.Context, db adapter.Adapter) error {
			return db.CreateTable(ctx, schema.Table{
				Name:    table,
				Columns: []schema.Column{{Name: "name", Type: schema.TypeString, Null: true}},
			})
		},
		func(ctx context.Context, db adapter.Adapter) error {
			return db.DropTable(ctx, table)
		},
	)
}

func TestNewRunnerRejectsDuplicateVersions(t *testing.T) {
	db := openDB(t)

	_, err := migrator.NewRunner(db, []migrator.Migration{
		createTableMigration(1, "First", "a"),
		createTableMigration(1, "Second", "b"),
	})
	require.ErrorContains(t, err, "duplicate migration version 1")
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	var out bytes.Buffer
	runner, err := migrator.NewRunner(db, []migrator.Migration{
		// Registered out of order on purpose.
		createTableMigration(3, "CreateGizmos", "gizmos"),
		createTableMigration(1, "CreateWidgets", "widgets"),
		createTableMigration(2, "CreateSprockets", "sprockets"),
	}, migrator.WithWriter(&out))
	require.NoError(t, err)

	require.NoError(t, runner.Migrate(ctx, 2))

	versions, err := db.GetVersions(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, versions)

	exists, err := db.HasTable(ctx, "gizmos")
	require.NoError(t, err)
	require.False(t, exists)

	// A second run applies only what is missing.
	require.NoError(t, runner.Migrate(ctx, 0))

	versions, err = db.GetVersions(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, versions)
	require.Contains(t, out.String(), "== 3 CreateGizmos: migrating")
}

func TestMigrateFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	boom := errors.New("boom")
	failing := migrator.NewMigration(1, "Failing",
		func(ctx context.Context, db adapter.Adapter) error {
			if err := db.CreateTable(ctx, schema.Table{
				Name:    "widgets",
				Columns: []schema.Column{{Name: "name", Type: schema.TypeString, Null: true}},
			}); err != nil {
				return err
			}
			return boom
		},
		nil,
	)

	runner, err := migrator.NewRunner(db, []migrator.Migration{failing}, migrator.WithWriter(&bytes.Buffer{}))
	require.NoError(t, err)

	err = runner.Migrate(ctx, 0)
	require.ErrorIs(t, err, boom)

	// The transaction rolled back: no table, no recorded version.
	exists, err := db.HasTable(ctx, "widgets")
	require.NoError(t, err)
	require.False(t, exists)

	versions, err := db.GetVersions(ctx)
	require.NoError(t, err)
	require.Empty(t, versions)
}

// noTxAdapter masks transaction support to exercise the partial-apply path.
type noTxAdapter struct {
	adapter.Adapter
}

func (noTxAdapter) HasTransactions() bool { return false }

func TestMigrateFailureWithoutTransactions(t *testing.T) {
	ctx := context.Background()
	db := noTxAdapter{openDB(t)}

	boom := errors.New("boom")
	failing := migrator.NewMigration(1, "Failing",
		func(ctx context.Context, db adapter.Adapter) error {
			if err := db.CreateTable(ctx, schema.Table{
				Name:    "widgets",
				Columns: []schema.Column{{Name: "name", Type: schema.TypeString, Null: true}},
			}); err != nil {
				return err
			}
			return boom
		},
		nil,
	)

	runner, err := migrator.NewRunner(db, []migrator.Migration{failing}, migrator.WithWriter(&bytes.Buffer{}))
	require.NoError(t, err)

	err = runner.Migrate(ctx, 0)
	require.ErrorIs(t, err, boom)

	var partial *migrator.PartialApplyError
	require.ErrorAs(t, err, &partial)
	require.Equal(t, int64(1), partial.Version)
	require.Equal(t, adapter.DirectionUp, partial.Direction)

	// No rollback happened, and no version was recorded.
	exists, err := db.HasTable(ctx, "widgets")
	require.NoError(t, err)
	require.True(t, exists)

	versions, err := db.GetVersions(ctx)
	require.NoError(t, err)
	require.Empty(t, versions)
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	runner, err := migrator.NewRunner(db, []migrator.Migration{
		createTableMigration(1, "CreateWidgets", "widgets"),
		createTableMigration(2, "CreateSprockets", "sprockets"),
		createTableMigration(3, "CreateGizmos", "gizmos"),
	}, migrator.WithWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	require.NoError(t, runner.Migrate(ctx, 0))

	require.NoError(t, runner.Rollback(ctx, 1))

	versions, err := db.GetVersions(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{1}, versions)

	exists, err := db.HasTable(ctx, "widgets")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = db.HasTable(ctx, "sprockets")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRollbackStopsAtBreakpoint(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	var out bytes.Buffer
	runner, err := migrator.NewRunner(db, []migrator.Migration{
		createTableMigration(1, "CreateWidgets", "widgets"),
		createTableMigration(2, "CreateSprockets", "sprockets"),
	}, migrator.WithWriter(&out))
	require.NoError(t, err)
	require.NoError(t, runner.Migrate(ctx, 0))

	require.NoError(t, db.SetBreakpoint(ctx, 2, true))
	require.NoError(t, runner.Rollback(ctx, 0))

	// The breakpointed version and everything below it remain applied.
	versions, err := db.GetVersions(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, versions)
	require.Contains(t, out.String(), "breakpoint reached")

	require.NoError(t, db.SetBreakpoint(ctx, 2, false))
	require.NoError(t, runner.Rollback(ctx, 0))

	versions, err = db.GetVersions(ctx)
	require.NoError(t, err)
	require.Empty(t, versions)
}

func TestRollbackMissingMigration(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	runner, err := migrator.NewRunner(db, []migrator.Migration{
		createTableMigration(1, "CreateWidgets", "widgets"),
	}, migrator.WithWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	require.NoError(t, runner.Migrate(ctx, 0))

	// Simulate a deleted migration file: the version is recorded but no
	// migration is registered for it.
	orphaned, err := migrator.NewRunner(db, nil, migrator.WithWriter(&bytes.Buffer{}))
	require.NoError(t, err)

	err = orphaned.Rollback(ctx, 0)
	require.ErrorContains(t, err, "no migration registered for recorded version 1")
}

func TestStatus(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)

	applied := createTableMigration(1, "CreateWidgets", "widgets")
	pending := createTableMigration(3, "CreateGizmos", "gizmos")

	seed, err := migrator.NewRunner(db, []migrator.Migration{
		applied,
		createTableMigration(2, "CreateSprockets", "sprockets"),
	}, migrator.WithWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	require.NoError(t, seed.Migrate(ctx, 0))

	// Version 2 is recorded but not registered with this runner.
	runner, err := migrator.NewRunner(db, []migrator.Migration{applied, pending}, migrator.WithWriter(&bytes.Buffer{}))
	require.NoError(t, err)

	statuses, err := runner.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	require.Equal(t, migrator.StatusApplied, statuses[0].State)
	require.Equal(t, "CreateWidgets", statuses[0].Name)
	require.False(t, statuses[0].AppliedAt.IsZero())

	require.Equal(t, migrator.StatusMissing, statuses[1].State)
	require.Equal(t, "CreateSprockets", statuses[1].Name)

	require.Equal(t, migrator.StatusPending, statuses[2].State)
	require.True(t, statuses[2].AppliedAt.IsZero())
}
