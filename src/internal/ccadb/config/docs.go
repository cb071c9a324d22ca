// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads the converter settings shared by the CLI and the
// MCP server: where the CCADB CSV export lives, which schema layout to
// read it with, where the workbook goes and how chatty the progress
// logging is. Files may be JSON or YAML, detected by extension, and the
// CCADB_TABULAR_CONFIG_FILE environment variable names a file to load when
// the caller does not.
package config
