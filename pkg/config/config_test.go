package config_test

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/pseudomuto/groundskeeper/pkg/config"
	"github.com/pseudomuto/groundskeeper/pkg/consts"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/groundskeeper.yaml
var testConfigYAML string

func TestLoadConfig(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(testConfigYAML))
		require.NoError(t, err)
		validateTestConfig(t, cfg)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader("environments:\n  development:\n    adapter: sqlite\n    dsn: dev.sqlite3\n"))
		require.NoError(t, err)
		require.Equal(t, consts.DefaultEnvironment, cfg.DefaultEnvironment)
		require.Equal(t, consts.DefaultMigrationsDir, cfg.Dir)
		require.Equal(t, consts.DefaultVersionTable, cfg.Environments["development"].VersionTable)
	})

	t.Run("error", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader("invalid: yaml: ["))
		require.Error(t, err)
		require.Nil(t, cfg)
		require.Contains(t, err.Error(), "failed to unmarshal project config")
	})
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "groundskeeper.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		validateTestConfig(t, cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		require.Nil(t, cfg)
	})
}

func TestEnvironment(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(testConfigYAML))
	require.NoError(t, err)

	t.Run("named", func(t *testing.T) {
		env, err := cfg.Environment("production")
		require.NoError(t, err)
		require.Equal(t, "postgres", env.Adapter)
		require.Equal(t, "schema_versions", env.VersionTable)
	})

	t.Run("default", func(t *testing.T) {
		env, err := cfg.Environment("")
		require.NoError(t, err)
		require.Equal(t, "sqlite", env.Adapter)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := cfg.Environment("staging")
		require.ErrorContains(t, err, `environment "staging" is not defined`)
	})
}

func TestEnvironmentOptions(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(testConfigYAML))
	require.NoError(t, err)

	env, err := cfg.Environment("analytics")
	require.NoError(t, err)

	opts := env.Options()
	require.Equal(t, "clickhouse://ch.internal:9000/analytics", opts.DSN)
	require.Equal(t, "events", opts.Cluster)
	require.Equal(t, consts.DefaultVersionTable, opts.VersionTable)
}

func validateTestConfig(t *testing.T, cfg *Config) {
	t.Helper()

	require.Equal(t, "development", cfg.DefaultEnvironment)
	require.Equal(t, "db/migrations", cfg.Dir)
	require.Len(t, cfg.Environments, 3)
	require.Equal(t, "sqlite", cfg.Environments["development"].Adapter)
	require.Equal(t, "tmp/dev.sqlite3", cfg.Environments["development"].DSN)
	require.Equal(t, consts.DefaultVersionTable, cfg.Environments["development"].VersionTable)
}
