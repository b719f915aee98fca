// Package database handles catalog database connections and schema inspection.
//
// It wraps GORM to configure either a MySQL server or a local SQLite file
// based on the application's configuration.
//
// # Connect
//
// Connect opens the configured driver, tunes the connection pool and pings
// the database before returning.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns for both dialects. The integrity
// feature uses it to verify the record catalog schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "laion_records")
package database
