package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Database struct {
			ConnectionString string `yaml:"connection_string"`
		} `yaml:"database"`
		Ingest *struct {
			DataDir           string `yaml:"data_dir"`
			StoreStatusFile   string `yaml:"store_status_file"`
			BusinessHoursFile string `yaml:"business_hours_file"`
			TimezonesFile     string `yaml:"timezones_file"`
		} `yaml:"ingest,omitempty"`
		Reports struct {
			Directory       string `yaml:"directory"`
			DefaultTimezone string `yaml:"default_timezone"`
		} `yaml:"reports,omitempty"`
		HTTP struct {
			ListenAddr string `yaml:"listen_addr"`
			Port       int    `yaml:"port"`
		} `yaml:"http,omitempty"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Database: DatabaseData{
			ConnectionString: yamlConfig.Database.ConnectionString,
		},
		Reports: ReportsData{
			Directory:       yamlConfig.Reports.Directory,
			DefaultTimezone: yamlConfig.Reports.DefaultTimezone,
		},
		HTTP: HTTPData{
			ListenAddr: yamlConfig.HTTP.ListenAddr,
			Port:       yamlConfig.HTTP.Port,
		},
	}

	if yamlConfig.Ingest != nil {
		config.Ingest = &IngestData{
			DataDir:           yamlConfig.Ingest.DataDir,
			StoreStatusFile:   yamlConfig.Ingest.StoreStatusFile,
			BusinessHoursFile: yamlConfig.Ingest.BusinessHoursFile,
			TimezonesFile:     yamlConfig.Ingest.TimezonesFile,
		}
	}

	return config, nil
}

// IsReadOnly returns true since YAML files are read-only configuration sources
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}
