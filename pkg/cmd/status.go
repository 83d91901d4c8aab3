package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pseudomuto/groundskeeper/pkg/migrator"
	"github.com/urfave/cli/v3"
)

// NewStatusCommand creates the status command for showing migration status.
//
// Status lists every registered migration with its standing (applied,
// pending) plus any versions recorded in the database with no matching
// migration (missing), along with applied-at timestamps and breakpoints.
//
// Example usage:
//
//	groundskeeper status
//	groundskeeper --env production status
func NewStatusCommand(migrations []migrator.Migration) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show migration status",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			db, err := openAdapter(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Disconnect(ctx) }()

			runner, err := migrator.NewRunner(db, migrations, migrator.WithWriter(output(cmd)))
			if err != nil {
				return err
			}

			statuses, err := runner.Status(ctx)
			if err != nil {
				return err
			}

			if len(statuses) == 0 {
				fmt.Fprintln(output(cmd), "No migrations registered or recorded.")
				return nil
			}

			w := tabwriter.NewWriter(output(cmd), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STATUS\tVERSION\tNAME\tAPPLIED AT")
			for _, s := range statuses {
				appliedAt := ""
				if !s.AppliedAt.IsZero() {
					appliedAt = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
				}

				name := s.Name
				if s.Breakpoint {
					name += " [breakpoint]"
				}

				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", s.State, s.Version, name, appliedAt)
			}
			return w.Flush()
		},
	}
}
