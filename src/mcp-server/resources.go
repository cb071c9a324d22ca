// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/inventory"
)

// summaryURI addresses the inventory summary resource.
const summaryURI = "ccadb://inventory/summary"

// createResources creates the static resources served alongside the
// tools. Clients read the summary to learn what export is loaded before
// issuing lookups.
func createResources(inv *inventory.Inventory) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(
				summaryURI,
				"Certificate Inventory Summary",
				mcp.WithResourceDescription("Summary of the loaded CCADB export: schema version, record counts, trust coverage, and revocations"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return handleSummaryResource(inv)
			},
		},
	}
}

// handleSummaryResource reports the resident inventory alongside server
// identity and a read timestamp.
func handleSummaryResource(inv *inventory.Inventory) ([]mcp.ResourceContents, error) {
	summary := map[string]any{
		"server":    serverName,
		"version":   GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"inventory": statsDocument(inv),
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal inventory summary: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      summaryURI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
