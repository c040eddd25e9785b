// Package config loads program configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/estudiarq/archisheets/internal/sheets"
)

// Config holds everything the program needs to reach its backing stores.
type Config struct {
	// MasterSheetID is the spreadsheet holding the project catalog.
	MasterSheetID string `yaml:"master_sheet_id"`

	// SheetsEndpoint overrides the remote store base URL. Used in tests.
	SheetsEndpoint string `yaml:"sheets_endpoint"`

	// TokenPath is where the bearer credential is stored.
	TokenPath string `yaml:"token_path"`

	// DBPath is the local catalog cache database file.
	DBPath string `yaml:"db_path"`
}

// DefaultConfigDir returns ~/.archisheets. Falls back to the current
// directory when the home directory cannot be determined.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".archisheets"
	}
	return filepath.Join(home, ".archisheets")
}

// DefaultConfigPath returns the default YAML config file location.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Load reads the config file at path (missing file is fine, defaults
// apply) and then applies ARCHISHEETS_* environment overrides.
//
// Recognized variables:
//
//	ARCHISHEETS_MASTER_SHEET    catalog spreadsheet id
//	ARCHISHEETS_SHEETS_ENDPOINT remote store base URL
//	ARCHISHEETS_TOKEN_PATH      credential file path
//	ARCHISHEETS_DB_PATH         local cache database path
func Load(path string) (Config, error) {
	cfg := Config{
		SheetsEndpoint: sheets.DefaultEndpoint,
		TokenPath:      filepath.Join(DefaultConfigDir(), "token"),
		DBPath:         filepath.Join(DefaultConfigDir(), "archisheets.db"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
		cfg.merge(fileCfg)
	}

	cfg.merge(Config{
		MasterSheetID:  os.Getenv("ARCHISHEETS_MASTER_SHEET"),
		SheetsEndpoint: os.Getenv("ARCHISHEETS_SHEETS_ENDPOINT"),
		TokenPath:      os.Getenv("ARCHISHEETS_TOKEN_PATH"),
		DBPath:         os.Getenv("ARCHISHEETS_DB_PATH"),
	})

	return cfg, nil
}

// merge overlays non-empty fields of other onto c.
func (c *Config) merge(other Config) {
	if other.MasterSheetID != "" {
		c.MasterSheetID = other.MasterSheetID
	}
	if other.SheetsEndpoint != "" {
		c.SheetsEndpoint = other.SheetsEndpoint
	}
	if other.TokenPath != "" {
		c.TokenPath = other.TokenPath
	}
	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
}

// Validate reports configuration the program cannot run without.
func (c Config) Validate() error {
	if c.MasterSheetID == "" {
		return fmt.Errorf("master sheet id not configured: set master_sheet_id in %s or ARCHISHEETS_MASTER_SHEET", DefaultConfigPath())
	}
	return nil
}
