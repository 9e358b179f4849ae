// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure PostgreSQL, MySQL or SQLite
// connections based on the application's configuration.
//
// # Connect
//
// Connect establishes a connection, applies pool settings and pings the server
// within the configured timeout. SQLite is used for local runs and tests.
//
// # Schema Inspection
//
// GetTableColumns returns the column definitions of a table so callers can
// verify that the sales table carries every column the sync writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "sales_data")
package database
