package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultVersionTable is the name of the reserved table used to record
	// applied migration versions unless overridden via adapter options.
	DefaultVersionTable = "groundskeeper_versions"

	// DefaultEnvironment is the environment used when none is specified on
	// the command line or in the project config.
	DefaultEnvironment = "development"

	// DefaultMigrationsDir is the directory migration stubs are written to
	// by the create command.
	DefaultMigrationsDir = "db/migrations"

	// ConfigFile is the name of the project configuration file.
	ConfigFile = "groundskeeper.yaml"
)
