// Package migrator runs schema migrations against any registered engine
// adapter.
//
// Migrations are Go values implementing the Migration interface, registered
// with a Runner in any order and executed in version order. The Runner tracks
// applied versions through the adapter's version store, wraps each migration
// in a transaction on engines that support transactional DDL, and surfaces
// partial-failure state on engines that do not.
//
// The lifecycle of a single migration under Migrate is:
//
//  1. Skip it when its version is already recorded.
//  2. Begin a transaction when the engine supports one.
//  3. Run Up.
//  4. Record the version with its execution timing.
//  5. Commit.
//
// A failure at any step rolls the transaction back, so a version is never
// recorded for work that did not commit. On non-transactional engines the
// same failure returns a *PartialApplyError naming the migration, since the
// database may hold a partially applied change that needs manual attention.
//
// Example usage:
//
//	migrations := []migrator.Migration{
//	    migrator.NewMigration(20260830120000, "CreateWidgets",
//	        func(ctx context.Context, db adapter.Adapter) error {
//	            return db.CreateTable(ctx, schema.Table{
//	                Name:    "widgets",
//	                Columns: []schema.Column{{Name: "name", Type: schema.TypeString}},
//	            })
//	        },
//	        func(ctx context.Context, db adapter.Adapter) error {
//	            return db.DropTable(ctx, "widgets")
//	        },
//	    ),
//	}
//
//	runner, err := migrator.NewRunner(db, migrations)
//	if err != nil {
//	    return err
//	}
//
//	if err := runner.Migrate(ctx, 0); err != nil {
//	    return err
//	}
package migrator
