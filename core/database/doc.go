// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either MySQL or SQLite from the application's
// configuration. The run journal is the only consumer.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read a table's live columns. The journal
// uses them to verify a pre-provisioned schema when auto-migration is off.
//
// # Usage
//
//	db, err := database.Connect(cfg.Journal.Database)
//	if err != nil {
//	    return err
//	}
//	missing, err := database.MissingColumns(db, "journal_runs", []string{"id", "backend"})
package database
