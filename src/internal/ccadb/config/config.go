// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/schema"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/xlsx"
)

// EnvConfigFile names the environment variable consulted for a config
// file path when the caller does not pass one explicitly.
const EnvConfigFile = "CCADB_TABULAR_CONFIG_FILE"

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config holds the converter settings. Zero values are filled with
// defaults by Load, so a missing or partial file is fine.
type Config struct {
	// Inventory: where the CCADB export lives and how to read it.
	Inventory struct {
		// CSVFile: Path to the AllCertificateRecords CSV export.
		CSVFile string `json:"csvFile" yaml:"csvFile"`
		// Schema: Export layout version (v1, v1r2, v1r3, v1r4, v2).
		Schema string `json:"schema" yaml:"schema"`
	} `json:"inventory" yaml:"inventory"`

	// Workbook: converter output settings.
	Workbook struct {
		// Output: Path the styled workbook is saved at.
		Output string `json:"output" yaml:"output"`
	} `json:"workbook" yaml:"workbook"`

	// Log: progress logging settings.
	Log struct {
		// Quiet: Suppress the phase progress lines.
		Quiet bool `json:"quiet" yaml:"quiet"`
		// File: Structured log destination for MCP server mode.
		File string `json:"file,omitempty" yaml:"file,omitempty"`
	} `json:"log" yaml:"log"`
}

// detectConfigFormat determines the configuration file format based on
// file extension, case-insensitively. Anything that is not .yaml or .yml
// is treated as JSON.
func detectConfigFormat(configPath string) configFormat {
	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("config: failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("config: failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// Load reads the configuration from configPath, or from the file named by
// CCADB_TABULAR_CONFIG_FILE when configPath is empty, and applies
// defaults. With neither set it returns the defaults alone.
//
// Configuration priority:
//  1. Default values are set
//  2. CCADB_TABULAR_CONFIG_FILE is checked if configPath is empty
//  3. Config file values override defaults (if the file exists and is valid)
func Load(configPath string) (*Config, error) {
	config := &Config{}

	// Set defaults
	config.Inventory.Schema = string(schema.Latest().Version)
	config.Workbook.Output = xlsx.DefaultPath

	if configPath == "" {
		configPath = os.Getenv(EnvConfigFile)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}

		format := detectConfigFormat(configPath)
		if err := unmarshalConfig(data, config, format); err != nil {
			return nil, err
		}

		// Restore defaults the file blanked out.
		if config.Inventory.Schema == "" {
			config.Inventory.Schema = string(schema.Latest().Version)
		}
		if config.Workbook.Output == "" {
			config.Workbook.Output = xlsx.DefaultPath
		}
	}

	// Reject unknown layout versions here rather than midway through a
	// conversion.
	if _, err := schema.Lookup(config.Inventory.Schema); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return config, nil
}
