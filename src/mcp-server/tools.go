// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/inventory"
)

// createTools creates the MCP tool definitions with their handlers bound
// to the resident inventory.
//
// The function defines the following tools:
//   - lookup_certificate: Returns one canonical record as JSON
//   - trust_chain: Resolves a certificate's ancestry with per-hop trust
//   - inventory_stats: Summarizes the loaded export
//
// Each tool includes parameter definitions, descriptions, and default
// values as required by the MCP specification.
func createTools(inv *inventory.Inventory) []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("lookup_certificate",
				mcp.WithDescription("Look up one certificate record from the loaded CCADB export by SHA-256 fingerprint or Salesforce record ID"),
				mcp.WithString("sha256",
					mcp.Description("SHA-256 certificate fingerprint (colon-separated and lowercase spellings are accepted)"),
				),
				mcp.WithString("id",
					mcp.Description("Salesforce record ID as exported by CCADB"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleLookupCertificate(request, inv)
			},
		},
		{
			Tool: mcp.NewTool("trust_chain",
				mcp.WithDescription("Resolve a certificate's ancestry up to its hierarchy root with the propagated trust verdict on every hop"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Salesforce record ID or SHA-256 certificate fingerprint"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleTrustChain(request, inv)
			},
		},
		{
			Tool: mcp.NewTool("inventory_stats",
				mcp.WithDescription("Summarize the loaded CCADB export: record counts by type, trust coverage, revocations, and resolver cache usage"),
				mcp.WithString("format",
					mcp.Description("Output format: 'markdown' or 'json' (default: markdown)"),
					mcp.DefaultString("markdown"),
				),
			),
			Handler: func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleInventoryStats(request, inv)
			},
		},
	}
}
