package adapter_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/groundskeeper/pkg/adapter"
	"github.com/stretchr/testify/require"
)

func TestStatementErrorCarriesStatement(t *testing.T) {
	cause := errors.New("syntax error near FROM")
	err := &adapter.StatementError{Statement: "SELECT FROM", Cause: cause}

	require.Contains(t, err.Error(), "SELECT FROM")
	require.Contains(t, err.Error(), "syntax error")
	require.ErrorIs(t, err, cause)

	var stmtErr *adapter.StatementError
	require.ErrorAs(t, errors.Wrap(err, "running migration"), &stmtErr)
	require.Equal(t, "SELECT FROM", stmtErr.Statement)
}

func TestSchemaErrorKinds(t *testing.T) {
	conflict := adapter.NewConflictError("table widgets", "already exists")
	require.ErrorIs(t, conflict, adapter.ErrSchemaConflict)
	require.NotErrorIs(t, conflict, adapter.ErrSchemaNotFound)
	require.Contains(t, conflict.Error(), "table widgets")

	missing := adapter.NewNotFoundError("column widgets.price", "")
	require.ErrorIs(t, missing, adapter.ErrSchemaNotFound)
	require.Contains(t, missing.Error(), "widgets.price")
}

func TestUnsupportedTypeError(t *testing.T) {
	err := &adapter.UnsupportedTypeError{Adapter: "sqlite", Type: "geometry"}
	require.ErrorIs(t, err, adapter.ErrUnsupportedType)
	require.Contains(t, err.Error(), `"geometry"`)
}

func TestConnectionErrorUnwraps(t *testing.T) {
	cause := errors.New("driver not installed")
	err := &adapter.ConnectionError{Adapter: "postgres", Cause: cause}
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "postgres")
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := &adapter.PersistenceError{Table: "groundskeeper_versions", Cause: cause}
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "groundskeeper_versions")
}
