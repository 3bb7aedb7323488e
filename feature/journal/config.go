package journal

import "storelisting/core/database"

// Config holds run journal settings.
type Config struct {
	// Enabled turns on recording of reconciliation runs.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// AutoMigrate creates or updates the journal tables on startup. When
	// off, the schema is only checked.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"true"`
	// Database is the journal's connection.
	Database database.Config `mapstructure:"database"`
}
