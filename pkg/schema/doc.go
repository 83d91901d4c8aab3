// Package schema defines the engine-independent schema object model used to
// describe desired database state: tables, columns, indexes, and foreign keys.
//
// Descriptors are passive value objects. Migration authors construct them and
// pass them to adapter operations; adapters translate them into engine-specific
// DDL and never retain them after the call returns.
//
// The package also defines the fixed set of logical column types. Each engine
// adapter maps every logical type to exactly one native SQL type, so the same
// Table descriptor produces equivalent schema on every supported engine.
//
// Example usage:
//
//	table := schema.Table{
//		Name: "widgets",
//		Columns: []schema.Column{
//			{Name: "sku", Type: schema.TypeString, Limit: 64},
//			{Name: "price", Type: schema.TypeDecimal, Precision: 10, Scale: 2},
//			{Name: "created_at", Type: schema.TypeTimestamp},
//		},
//		Indexes: []schema.Index{
//			{Columns: []string{"sku"}, Unique: true},
//		},
//	}
//
//	if err := adapter.CreateTable(ctx, table); err != nil {
//		log.Fatal(err)
//	}
package schema
