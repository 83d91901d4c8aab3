package migrator

import (
	"context"

	"github.com/pseudomuto/groundskeeper/pkg/adapter"
)

type (
	// Migration is a single reversible schema change. Versions are int64
	// values, conventionally YYYYMMDDHHMMSS timestamps, and must be unique
	// within a Runner.
	Migration interface {
		// Version returns the migration's unique ordering key.
		Version() int64

		// Name returns a human-readable migration name, recorded in the
		// version store alongside the version.
		Name() string

		// Up applies the migration.
		Up(ctx context.Context, db adapter.Adapter) error

		// Down reverts the migration.
		Down(ctx context.Context, db adapter.Adapter) error
	}

	// MigrationFunc is one direction of a migration expressed as a func
	// literal.
	MigrationFunc func(ctx context.Context, db adapter.Adapter) error

	migration struct {
		version int64
		name    string
		up      MigrationFunc
		down    MigrationFunc
	}
)

// NewMigration builds a Migration from func literals. A nil up or down func
// makes that direction a no-op, which is occasionally useful for one-way data
// backfills.
func NewMigration(version int64, name string, up, down MigrationFunc) Migration {
	return &migration{version: version, name: name, up: up, down: down}
}

func (m *migration) Version() int64 { return m.version }
func (m *migration) Name() string   { return m.name }

func (m *migration) Up(ctx context.Context, db adapter.Adapter) error {
	if m.up == nil {
		return nil
	}
	return m.up(ctx, db)
}

func (m *migration) Down(ctx context.Context, db adapter.Adapter) error {
	if m.down == nil {
		return nil
	}
	return m.down(ctx, db)
}
