// Package clickhouse provides the ClickHouse engine adapter, backed by the
// official clickhouse-go driver's database/sql interface.
//
// ClickHouse differs from the transactional engines in several ways that
// surface through the contract:
//
//   - HasTransactions reports false; BeginTransaction returns
//     ErrUnsupportedFeature and migration runners fall back to
//     statement-at-a-time execution.
//   - Secondary index and foreign key operations return
//     ErrUnsupportedFeature. ClickHouse has neither b-tree indexes nor
//     referential constraints.
//   - Tables have no implicit auto-incrementing identity column; set the
//     primary key through TableOptions.OrderBy (or PrimaryKey) instead. The
//     table engine defaults to MergeTree.
//   - Version-store breakpoints use ALTER TABLE ... UPDATE, ClickHouse's
//     mutation syntax.
//
// When Options.Cluster is set, every DDL statement carries an ON CLUSTER
// clause so schema changes propagate to all replicas.
//
// Importing the package registers the engine under the name "clickhouse":
//
//	import _ "github.com/pseudomuto/groundskeeper/pkg/adapter/clickhouse"
//
//	db, err := adapter.Open("clickhouse", adapter.Options{
//		DSN: "clickhouse://localhost:9000/app",
//	})
package clickhouse
