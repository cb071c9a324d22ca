// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/config"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/convert"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/inventory"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/schema"
	"github.com/kidmin/ccadb-certificates-tabular/src/logger"
	"github.com/kidmin/ccadb-certificates-tabular/src/version"
)

// ErrNoInventory is returned when the configuration names no CSV export
// to serve. The server has nothing to answer lookups from without one.
var ErrNoInventory = errors.New("mcpserver: config names no CCADB CSV export (inventory.csvFile)")

var serverName = "CCADB Certificate Inventory" // MCP server name
var appVersion = version.Version               // default version

// GetVersion returns the current version of the MCP server.
//
// The version is initially the default from the version package and is
// overridden when Run is called with a specific version string, so
// ldflags-built binaries report their build version here too.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server over stdio with the certificate inventory
// tools. It loads configuration from the CCADB_TABULAR_CONFIG_FILE
// environment variable, reads and converts the configured CSV export
// once, and then serves lookups against the resident inventory.
//
// Run blocks until the client closes the stream or the process receives
// SIGINT or SIGTERM. Signal-based shutdown is reported as a wrapped
// context.Canceled error.
func Run(runVersion string) error {
	// Set the version for GetVersion
	appVersion = runVersion

	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Inventory.CSVFile == "" {
		return ErrNoInventory
	}

	// Already validated by config.Load; resolve the layout for the pipeline.
	layout, err := schema.Lookup(cfg.Inventory.Schema)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, closeLog, err := newServerLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Convert the export once; every tool call reads from this inventory.
	inv, err := inventory.Load(ctx, layout, convert.FileSource(cfg.Inventory.CSVFile), log)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	log.Printf("inventory ready: %d records, schema %s", inv.Len(), inv.Version())

	s := newServer(inv, appVersion)

	// Create stdio server to connect with our context
	stdioServer := server.NewStdioServer(s)

	// Start server with graceful shutdown support
	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		// Graceful shutdown triggered by signal
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}

// newServer assembles the MCP server with every tool and resource bound
// to the resident inventory.
func newServer(inv *inventory.Inventory, serverVersion string) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
	)

	for _, tool := range createTools(inv) {
		s.AddTool(tool.Tool, tool.Handler)
	}
	for _, r := range createResources(inv) {
		s.AddResource(r.Resource, r.Handler)
	}
	return s
}

// newServerLogger builds the structured logger for server mode. Stdout
// carries the MCP protocol, so progress lines go to the configured log
// file, or stderr when none is set. Quiet suppresses them entirely.
func newServerLogger(cfg *config.Config) (logger.Logger, func(), error) {
	var writer io.Writer = os.Stderr
	closeLog := func() {}

	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = f
		closeLog = func() { _ = f.Close() }
	}

	return logger.NewMCPLogger(writer, cfg.Log.Quiet), closeLog, nil
}
