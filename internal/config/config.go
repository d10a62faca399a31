package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Batch  BatchConfig  `mapstructure:"batch"`
	Export ExportConfig `mapstructure:"export"`
	Log    LogConfig    `mapstructure:"log"`
}

// BatchConfig holds batch extraction settings.
type BatchConfig struct {
	Workers int `mapstructure:"workers"`
}

// ExportConfig holds spreadsheet output settings, including the static
// column values stamped onto every row.
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	Basename  string `mapstructure:"basename"`
	Format    string `mapstructure:"format"`

	Currency        string `mapstructure:"currency"`
	SinglePrice     int    `mapstructure:"single_price"`
	CorporatePrice  int    `mapstructure:"corporate_price"`
	EnterprisePrice int    `mapstructure:"enterprise_price"`
	PageCountMin    int    `mapstructure:"page_count_min"`
	PageCountMax    int    `mapstructure:"page_count_max"`
	Status          string `mapstructure:"status"`
	Segmentation    string `mapstructure:"segmentation"`
	MetaKey         string `mapstructure:"meta_key"`
	BaseYear        string `mapstructure:"base_year"`
	History         string `mapstructure:"history"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the REPORTFORGE_
// prefix, optionally layered over a config.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REPORTFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Batch defaults
	v.SetDefault("batch.workers", 4)

	// Export defaults
	v.SetDefault("export.output_dir", ".")
	v.SetDefault("export.basename", "Word_Files")
	v.SetDefault("export.format", "xlsx")
	v.SetDefault("export.currency", "USD")
	v.SetDefault("export.single_price", 4485)
	v.SetDefault("export.corporate_price", 6449)
	v.SetDefault("export.enterprise_price", 8339)
	v.SetDefault("export.page_count_min", 150)
	v.SetDefault("export.page_count_max", 200)
	v.SetDefault("export.status", "IN")
	v.SetDefault("export.segmentation", "<p>.</p>")
	v.SetDefault("export.meta_key", ".")
	v.SetDefault("export.base_year", "2024")
	v.SetDefault("export.history", "2019-2023")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
