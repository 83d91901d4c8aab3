package schema

type (
	// ColumnType is a logical, engine-independent column type. Every adapter
	// maps each logical type it supports to exactly one native SQL type; the
	// full set of types an adapter supports is reported by GetColumnTypes.
	ColumnType string

	// ReferentialAction describes the ON DELETE / ON UPDATE behavior of a
	// foreign key constraint.
	ReferentialAction string
)

// The fixed enumerated set of logical column types.
const (
	TypeString       ColumnType = "string"
	TypeText         ColumnType = "text"
	TypeSmallInteger ColumnType = "smallinteger"
	TypeInteger      ColumnType = "integer"
	TypeBigInteger   ColumnType = "biginteger"
	TypeFloat        ColumnType = "float"
	TypeDecimal      ColumnType = "decimal"
	TypeDateTime     ColumnType = "datetime"
	TypeTimestamp    ColumnType = "timestamp"
	TypeTime         ColumnType = "time"
	TypeDate         ColumnType = "date"
	TypeBinary       ColumnType = "binary"
	TypeBoolean      ColumnType = "boolean"
	TypeUUID         ColumnType = "uuid"
	TypeJSON         ColumnType = "json"
)

// Referential actions recognized in ForeignKey descriptors.
const (
	NoAction   ReferentialAction = "NO ACTION"
	Restrict   ReferentialAction = "RESTRICT"
	Cascade    ReferentialAction = "CASCADE"
	SetNull    ReferentialAction = "SET NULL"
	SetDefault ReferentialAction = "SET DEFAULT"
)
