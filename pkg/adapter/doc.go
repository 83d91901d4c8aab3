// Package adapter defines the uniform contract that lets the migration runner
// apply, revert, and introspect schema changes without knowing which database
// engine it talks to.
//
// The package contains:
//   - The Adapter interface: connection lifecycle, transaction control, raw
//     execution, identifier quoting, schema introspection and mutation, and
//     the version-store protocol tracking applied migrations.
//   - Typed error kinds (connection, statement, schema precondition,
//     unsupported type, transaction state, persistence) that classify
//     failures uniformly across engines via errors.Is / errors.As.
//   - An engine registry: engine packages register a Factory in init, and
//     callers construct adapters with Open by name.
//   - SQLAdapter, a shared database/sql base composed into engines through
//     the Dialect interface. Engines built on database/sql (SQLite,
//     PostgreSQL) embed it; engines with native drivers (ClickHouse)
//     implement the contract directly.
//
// One Adapter owns exactly one logical connection and a single transaction
// slot. Instances are not safe for concurrent use; callers serialize access
// or use one adapter per worker. Concurrent migration runs against the same
// database are not arbitrated by this layer.
//
// Example usage:
//
//	import (
//		"github.com/pseudomuto/groundskeeper/pkg/adapter"
//		_ "github.com/pseudomuto/groundskeeper/pkg/adapter/sqlite"
//	)
//
//	db, err := adapter.Open("sqlite", adapter.Options{DSN: "app.db"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := db.Connect(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer db.Disconnect(ctx)
//
//	ok, err := db.HasTable(ctx, "widgets")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("widgets exists:", ok)
package adapter
