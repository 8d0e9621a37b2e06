// Package config loads service configuration from YAML files or SQLite
// databases behind a common provider interface.
package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Configuration management
	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Database DatabaseData `json:"database"`
	Ingest   *IngestData  `json:"ingest,omitempty"`
	Reports  ReportsData  `json:"reports,omitempty"`
	HTTP     HTTPData     `json:"http,omitempty"`
}

// DatabaseData holds the monitoring database connection settings
type DatabaseData struct {
	ConnectionString string `json:"connection_string"`
}

// IngestData holds the CSV startup-load settings. A nil IngestData section
// skips ingestion and serves reports from whatever the database holds.
type IngestData struct {
	DataDir           string `json:"data_dir"`
	StoreStatusFile   string `json:"store_status_file,omitempty"`
	BusinessHoursFile string `json:"business_hours_file,omitempty"`
	TimezonesFile     string `json:"timezones_file,omitempty"`
}

// ReportsData holds report generation settings
type ReportsData struct {
	Directory       string `json:"directory,omitempty"`
	DefaultTimezone string `json:"default_timezone,omitempty"`
}

// HTTPData holds the trigger/poll API server settings
type HTTPData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
}
