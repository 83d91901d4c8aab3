package migrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/pseudomuto/groundskeeper/pkg/adapter"
)

// StatusState constants classify each migration in a Status report.
const (
	// StatusApplied means the migration is registered and recorded in the
	// version store.
	StatusApplied StatusState = "applied"

	// StatusPending means the migration is registered but not yet applied.
	StatusPending StatusState = "pending"

	// StatusMissing means a version is recorded in the version store but no
	// matching migration is registered, usually because a migration file was
	// deleted after being applied.
	StatusMissing StatusState = "missing"
)

type (
	// StatusState classifies a migration's standing relative to the version
	// store.
	StatusState string

	// MigrationStatus is one row of a Status report.
	MigrationStatus struct {
		Version    int64
		Name       string
		State      StatusState
		AppliedAt  time.Time
		Breakpoint bool
	}

	// Runner executes registered migrations against a connected adapter.
	//
	// Example usage:
	//
	//	runner, err := migrator.NewRunner(db, migrations)
	//	if err != nil {
	//	    return err
	//	}
	//
	//	if err := runner.Migrate(ctx, 0); err != nil {
	//	    return err
	//	}
	Runner struct {
		db         adapter.Adapter
		migrations []Migration
		writer     io.Writer
	}

	// RunnerOption customizes a Runner.
	RunnerOption func(*Runner)

	// PartialApplyError reports a migration failure on an engine without
	// transactional DDL. The database may hold a partially applied change;
	// the recorded versions are still accurate because the version is only
	// recorded after the migration completes.
	PartialApplyError struct {
		Version   int64
		Name      string
		Direction adapter.Direction
		Cause     error
	}
)

func (e *PartialApplyError) Error() string {
	return fmt.Sprintf(
		"migration %d (%s) failed %s without transaction support; the database may be partially migrated: %v",
		e.Version, e.Name, e.Direction, e.Cause,
	)
}

func (e *PartialApplyError) Unwrap() error { return e.Cause }

// WithWriter directs the Runner's progress output to w instead of stdout.
func WithWriter(w io.Writer) RunnerOption {
	return func(r *Runner) { r.writer = w }
}

// NewRunner creates a Runner over the given adapter and migrations. The
// migrations are sorted by version; registering two migrations with the same
// version is an error.
func NewRunner(db adapter.Adapter, migrations []Migration, opts ...RunnerOption) (*Runner, error) {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version() < sorted[j].Version() })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Version() == sorted[i-1].Version() {
			return nil, errors.Errorf(
				"duplicate migration version %d (%s and %s)",
				sorted[i].Version(), sorted[i-1].Name(), sorted[i].Name(),
			)
		}
	}

	r := &Runner{db: db, migrations: sorted, writer: os.Stdout}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Migrate applies all pending migrations with versions at or below target in
// ascending order. A target of 0 applies everything. Already-recorded
// versions are skipped.
func (r *Runner) Migrate(ctx context.Context, target int64) error {
	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, m := range r.migrations {
		if target > 0 && m.Version() > target {
			break
		}
		if applied[m.Version()] {
			continue
		}

		r.logf("== %d %s: migrating", m.Version(), m.Name())
		start := time.Now()
		if err := r.run(ctx, m, adapter.DirectionUp, start); err != nil {
			return err
		}
		r.logf("== %d %s: migrated (%s)", m.Version(), m.Name(), time.Since(start).Round(time.Millisecond))
	}

	return nil
}

// Rollback reverts applied migrations with versions above target in
// descending order. A target of 0 reverts everything. Rolling back stops at
// the first version carrying a breakpoint; clear it with the adapter's
// SetBreakpoint to roll back further.
func (r *Runner) Rollback(ctx context.Context, target int64) error {
	log, err := r.db.GetVersionLog(ctx)
	if err != nil {
		return err
	}

	byVersion := make(map[int64]Migration, len(r.migrations))
	for _, m := range r.migrations {
		byVersion[m.Version()] = m
	}

	for i := len(log) - 1; i >= 0; i-- {
		rec := log[i]
		if rec.Version <= target {
			break
		}

		if rec.Breakpoint {
			r.logf("== %d %s: breakpoint reached, stopping rollback", rec.Version, rec.Name)
			break
		}

		m, ok := byVersion[rec.Version]
		if !ok {
			return errors.Errorf("no migration registered for recorded version %d (%s)", rec.Version, rec.Name)
		}

		r.logf("== %d %s: reverting", m.Version(), m.Name())
		start := time.Now()
		if err := r.run(ctx, m, adapter.DirectionDown, start); err != nil {
			return err
		}
		r.logf("== %d %s: reverted (%s)", m.Version(), m.Name(), time.Since(start).Round(time.Millisecond))
	}

	return nil
}

// Status reports the standing of every registered migration plus any
// recorded versions with no matching migration, ordered by version.
func (r *Runner) Status(ctx context.Context) ([]MigrationStatus, error) {
	log, err := r.db.GetVersionLog(ctx)
	if err != nil {
		return nil, err
	}

	recorded := make(map[int64]adapter.VersionRecord, len(log))
	for _, rec := range log {
		recorded[rec.Version] = rec
	}

	registered := make(map[int64]bool, len(r.migrations))
	statuses := make([]MigrationStatus, 0, len(r.migrations)+len(log))

	for _, m := range r.migrations {
		registered[m.Version()] = true

		status := MigrationStatus{Version: m.Version(), Name: m.Name(), State: StatusPending}
		if rec, ok := recorded[m.Version()]; ok {
			status.State = StatusApplied
			status.AppliedAt = rec.StartTime
			status.Breakpoint = rec.Breakpoint
		}
		statuses = append(statuses, status)
	}

	for _, rec := range log {
		if registered[rec.Version] {
			continue
		}
		statuses = append(statuses, MigrationStatus{
			Version:    rec.Version,
			Name:       rec.Name,
			State:      StatusMissing,
			AppliedAt:  rec.StartTime,
			Breakpoint: rec.Breakpoint,
		})
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Version < statuses[j].Version })
	return statuses, nil
}

// run executes one migration in one direction under the engine's transaction
// policy and records the outcome in the version store.
func (r *Runner) run(ctx context.Context, m Migration, direction adapter.Direction, start time.Time) error {
	useTx := r.db.HasTransactions()
	if useTx {
		if err := r.db.BeginTransaction(ctx); err != nil {
			return err
		}
	}

	var err error
	if direction == adapter.DirectionDown {
		err = m.Down(ctx, r.db)
	} else {
		err = m.Up(ctx, r.db)
	}

	if err == nil {
		info := adapter.MigrationInfo{Version: m.Version(), Name: m.Name()}
		err = r.db.Migrated(ctx, info, direction, start, time.Now())
	}

	if err != nil {
		if useTx {
			if rbErr := r.db.RollbackTransaction(ctx); rbErr != nil {
				return errors.Wrapf(err, "rollback also failed (%v)", rbErr)
			}
			return errors.Wrapf(err, "migration %d (%s) failed", m.Version(), m.Name())
		}
		return &PartialApplyError{Version: m.Version(), Name: m.Name(), Direction: direction, Cause: err}
	}

	if useTx {
		return r.db.CommitTransaction(ctx)
	}
	return nil
}

func (r *Runner) appliedVersions(ctx context.Context) (map[int64]bool, error) {
	versions, err := r.db.GetVersions(ctx)
	if err != nil {
		return nil, err
	}

	applied := make(map[int64]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func (r *Runner) logf(format string, args ...any) {
	fmt.Fprintf(r.writer, format+"\n", args...)
}
