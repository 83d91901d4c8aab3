// Package sqlite provides the SQLite engine adapter, the reference
// implementation of the adapter contract. It uses the pure-Go modernc.org
// driver, so it works without cgo and serves as the engine the contract's
// behavior is specified against in tests.
//
// SQLite supports transactional DDL, so HasTransactions reports true and a
// failed migration rolls back cleanly. Operations ALTER TABLE cannot express
// (changing a column's type, adding or dropping a foreign key) are performed
// with a table rebuild: a shadow table is created with the new definition,
// rows are copied across, and the original is dropped and renamed over.
// Indexes are captured before the rebuild and recreated afterward.
//
// Databases are plain files: CreateDatabase touches a .sqlite3 file,
// HasDatabase checks for it, DropDatabase removes it.
//
// Importing the package registers the engine under the name "sqlite":
//
//	import _ "github.com/pseudomuto/groundskeeper/pkg/adapter/sqlite"
//
//	db, err := adapter.Open("sqlite", adapter.Options{DSN: ":memory:"})
package sqlite
