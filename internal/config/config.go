package config

import "github.com/spf13/viper"

type (
	Config struct {
		Database
		Export
		ExportSync
	}

	Database struct {
		Path string
	}
	Export struct {
		Dir string // Directory for markdown exports
	}
	ExportSync struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("export_dir", DefaultExportDir)
	v.SetDefault("export_sync_enabled", false)
	v.SetDefault("export_sync_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Export: Export{
			Dir: v.GetString("EXPORT_DIR"),
		},
		ExportSync: ExportSync{
			Enabled:  v.GetBool("EXPORT_SYNC_ENABLED"),
			Schedule: v.GetString("EXPORT_SYNC_SCHEDULE"),
		},
	}
}
