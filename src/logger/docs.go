// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging operations.
// It defines the Logger interface and provides two implementations: CLILogger for
// human-readable command-line output (the converter's phase progress lines) and
// MCPLogger for structured JSON logging in MCP server environments. MCPLogger is
// safe for concurrent use and silent by default so it never corrupts the stdio
// protocol stream.
package logger
