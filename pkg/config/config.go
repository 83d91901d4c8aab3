package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/pseudomuto/groundskeeper/pkg/consts"
	"gopkg.in/yaml.v3"
)

type (
	// Environment describes one named database target. A project typically
	// declares development, test, and production environments pointing at
	// different servers.
	Environment struct {
		// Adapter is the registered engine name: "sqlite", "postgres", or
		// "clickhouse".
		Adapter string `yaml:"adapter"`

		// DSN is the engine-specific connection string.
		DSN string `yaml:"dsn"`

		// VersionTable overrides the version-store table name. Defaults to
		// consts.DefaultVersionTable.
		VersionTable string `yaml:"version_table,omitempty"`

		// Database names the target database for engines where the DSN does
		// not already select one.
		Database string `yaml:"database,omitempty"`

		// Cluster names a ClickHouse cluster for ON CLUSTER DDL. Ignored by
		// other engines.
		Cluster string `yaml:"cluster,omitempty"`
	}

	// Config represents the project configuration for schema migrations.
	Config struct {
		// DefaultEnvironment selects the environment used when a command is
		// run without --env. Defaults to "development".
		DefaultEnvironment string `yaml:"default_environment"`

		// Dir specifies the directory where migration files are stored.
		Dir string `yaml:"dir"`

		// Environments maps environment names to their database targets.
		Environments map[string]Environment `yaml:"environments"`
	}
)

// LoadConfig parses a project configuration from the provided io.Reader.
//
// The function expects YAML-formatted configuration data declaring the
// migration directory and one or more named environments. Missing fields are
// defaulted: the default environment name, the migrations directory, and each
// environment's version table.
//
// Example:
//
//	yamlData := `
//	default_environment: development
//	dir: db/migrations
//	environments:
//	  development:
//	    adapter: sqlite
//	    dsn: dev.sqlite3
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal project config")
	}

	if cfg.DefaultEnvironment == "" {
		cfg.DefaultEnvironment = consts.DefaultEnvironment
	}
	if cfg.Dir == "" {
		cfg.Dir = consts.DefaultMigrationsDir
	}

	for name, env := range cfg.Environments {
		if env.VersionTable == "" {
			env.VersionTable = consts.DefaultVersionTable
			cfg.Environments[name] = env
		}
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
//
// Example:
//
//	cfg, err := config.LoadConfigFile("groundskeeper.yaml")
//	if err != nil {
//		log.Fatal("Failed to load config:", err)
//	}
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Environment returns the named environment, or the default environment when
// name is empty.
func (c *Config) Environment(name string) (Environment, error) {
	if name == "" {
		name = c.DefaultEnvironment
	}

	env, ok := c.Environments[name]
	if !ok {
		return Environment{}, errors.Errorf("environment %q is not defined in the project config", name)
	}
	return env, nil
}

// Options converts the environment into adapter connection options.
func (e Environment) Options() adapter.Options {
	return adapter.Options{
		DSN:          e.DSN,
		VersionTable: e.VersionTable,
		Database:     e.Database,
		Cluster:      e.Cluster,
	}
}
