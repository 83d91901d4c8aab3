package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors used to classify failures across all engine adapters.
// Typed errors returned by adapters match these via errors.Is, so callers
// can branch on the kind without depending on a concrete engine.
var (
	// ErrNotConnected is returned when an operation requires an established
	// connection and Connect has not been called (or Disconnect already has).
	ErrNotConnected = errors.New("adapter is not connected")

	// ErrSchemaConflict indicates a precondition violation where the target
	// object already exists (e.g. CreateTable on an existing table).
	ErrSchemaConflict = errors.New("schema object already exists")

	// ErrSchemaNotFound indicates a precondition violation where the target
	// object does not exist (e.g. DropTable on a missing table).
	ErrSchemaNotFound = errors.New("schema object not found")

	// ErrUnsupportedType indicates a logical column type with no native
	// mapping on the engine.
	ErrUnsupportedType = errors.New("unsupported column type")

	// ErrNoTransaction is returned when commit or rollback is called without
	// a matching begin. This is a programmer error, never retried.
	ErrNoTransaction = errors.New("no open transaction")

	// ErrTransactionOpen is returned when begin is called while a transaction
	// is already active; adapters support a single transaction at a time.
	ErrTransactionOpen = errors.New("transaction already open")

	// ErrUnsupportedFeature indicates a capability the engine cannot provide
	// (e.g. foreign keys on ClickHouse). Callers should consult the adapter's
	// capability surface before relying on optional features.
	ErrUnsupportedFeature = errors.New("feature not supported by this engine")
)

type (
	// ConnectionError wraps a failure to establish or tear down the
	// underlying database session, carrying the driver or network cause.
	ConnectionError struct {
		Adapter string
		Cause   error
	}

	// StatementError wraps an engine diagnostic together with the offending
	// statement text so failures can be reported precisely.
	StatementError struct {
		Statement string
		Cause     error
	}

	// SchemaError reports a schema precondition violation, naming the object
	// involved. Kind is one of ErrSchemaConflict or ErrSchemaNotFound.
	SchemaError struct {
		Kind   error
		Object string
		Detail string
	}

	// UnsupportedTypeError reports a logical column type the engine has no
	// native mapping for.
	UnsupportedTypeError struct {
		Adapter string
		Type    string
	}

	// PersistenceError reports that the version-store table is unavailable
	// or could not be created.
	PersistenceError struct {
		Table string
		Cause error
	}
)

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: connection failed: %v", e.Adapter, e.Cause)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement failed: %v (statement: %s)", e.Cause, e.Statement)
}

func (e *StatementError) Unwrap() error { return e.Cause }

func (e *SchemaError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Object, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Object, e.Kind, e.Detail)
}

func (e *SchemaError) Unwrap() error { return e.Kind }

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: %v: %q", e.Adapter, ErrUnsupportedType, e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("version store %q unavailable: %v", e.Table, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }

// NewConflictError reports that the named schema object already exists.
// Engine adapters use this to surface precondition violations uniformly.
func NewConflictError(object, detail string) error {
	return &SchemaError{Kind: ErrSchemaConflict, Object: object, Detail: detail}
}

// NewNotFoundError reports that the named schema object does not exist.
func NewNotFoundError(object, detail string) error {
	return &SchemaError{Kind: ErrSchemaNotFound, Object: object, Detail: detail}
}
