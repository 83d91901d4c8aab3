// Package cmd provides CLI commands for the groundskeeper tool.
//
// This package implements the command-line interface for groundskeeper,
// providing commands for project scaffolding and running migrations against
// any registered engine adapter.
//
// # Available Commands
//
//   - init: Initialize a new groundskeeper project structure
//   - create: Generate a timestamped migration stub
//   - migrate: Apply pending migrations
//   - rollback: Revert applied migrations
//   - status: Show the standing of every migration
//
// # Command Structure
//
// Each command is implemented as a separate function that returns a
// *cli.Command, following the urfave/cli/v3 pattern. Commands read the
// project configuration named by the global --config flag and select a
// database target with --env.
//
// # Embedding
//
// Migrations are Go values, so the migrate, rollback, and status commands
// operate on the migrations the embedding binary registers:
//
//	err := cmd.Run(ctx, version, os.Args,
//	    cmd.WithMigrations(migrations.All()...),
//	)
//
// The stock groundskeeper binary embeds no migrations; projects build their
// own entry point (the stub emitted by `groundskeeper create` shows the
// shape) and call Run with their migration set.
package cmd
