package config

// Default paths used when the environment leaves them unset
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./notekeeper.db"

	// DefaultExportDir is the default directory for markdown exports
	DefaultExportDir = "./export"
)
