package adapter

import (
	"io"
	"os"

	"github.com/pseudomuto/groundskeeper/pkg/consts"
)

type (
	// Options configures an adapter instance. Absent fields use documented
	// defaults; every engine recognizes the full set even when a field does
	// not apply to it.
	Options struct {
		// DSN is the engine-specific connection string (e.g. a file path
		// for SQLite, a postgres:// URL, or host:port for ClickHouse).
		DSN string

		// VersionTable overrides the name of the reserved table used to
		// record applied migration versions. Defaults to
		// consts.DefaultVersionTable.
		VersionTable string

		// Database names the database/schema operated on, for engines where
		// the DSN alone does not carry it (ClickHouse).
		Database string

		// Cluster enables ON CLUSTER DDL on ClickHouse deployments. Ignored
		// by other engines.
		Cluster string

		// Writer receives warning output (e.g. lossy ChangeColumn notices).
		// Defaults to os.Stderr.
		Writer io.Writer
	}

	// DatabaseOptions configures CreateDatabase. Absent fields use engine
	// defaults.
	DatabaseOptions struct {
		// Charset overrides the database character set (engines that
		// support one).
		Charset string

		// Collation overrides the database collation.
		Collation string
	}

	// HasColumnOptions tunes column existence checks.
	HasColumnOptions struct {
		// CaseInsensitive matches column names ignoring case. The default
		// is the engine's own identifier-case convention (exact match).
		CaseInsensitive bool
	}

	// DropIndexOptions tunes index removal.
	DropIndexOptions struct {
		// Name drops the index by explicit name instead of resolving it
		// from the column list.
		Name string
	}

	// DropForeignKeyOptions tunes foreign key removal.
	DropForeignKeyOptions struct {
		// Constraint drops the foreign key by explicit constraint name
		// instead of resolving it from the column list.
		Constraint string
	}
)

// withDefaults returns a copy of the options with absent fields filled in.
func (o Options) withDefaults() Options {
	if o.VersionTable == "" {
		o.VersionTable = consts.DefaultVersionTable
	}
	if o.Writer == nil {
		o.Writer = os.Stderr
	}
	return o
}
