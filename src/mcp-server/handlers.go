// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/country"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/inventory"
)

// handleLookupCertificate returns one canonical record as indented JSON.
// The record is addressed by SHA-256 fingerprint or Salesforce record ID;
// when both parameters are present the ID wins.
func handleLookupCertificate(request mcp.CallToolRequest, inv *inventory.Inventory) (*mcp.CallToolResult, error) {
	fingerprint := request.GetString("sha256", "")
	id := request.GetString("id", "")

	var (
		row []any
		ok  bool
	)
	switch {
	case id != "":
		if row, ok = inv.ByID(id); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no record with ID %q in the loaded export", id)), nil
		}
	case fingerprint != "":
		if row, ok = inv.BySHA256(fingerprint); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("no record with fingerprint %q in the loaded export", fingerprint)), nil
		}
	default:
		return mcp.NewToolResultError("either sha256 or id parameter is required"), nil
	}

	document := map[string]any{
		"schema": string(inv.Version()),
		"record": recordFields(inv, row),
	}
	jsonData, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode record: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// chainHopDocument is one ancestry hop in the trust_chain response.
type chainHopDocument struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Owner string `json:"owner,omitempty"`
	Role  string `json:"role"`
	Trust string `json:"trust"`
}

// handleTrustChain resolves a certificate's ancestry, leaf first, and
// reports the propagated trust verdict on every hop.
func handleTrustChain(request mcp.CallToolRequest, inv *inventory.Inventory) (*mcp.CallToolResult, error) {
	ref, err := request.RequireString("certificate")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
	}

	hops, err := inv.TrustChain(ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hopDocuments := make([]chainHopDocument, 0, len(hops))
	for _, hop := range hops {
		hopDocuments = append(hopDocuments, chainHopDocument{
			ID:    hop.ID,
			Name:  hop.Name,
			Owner: hop.Owner,
			Role:  hopRole(hop.Root),
			Trust: hop.Trust.String(),
		})
	}

	document := map[string]any{
		"certificate": ref,
		"hops":        hopDocuments,
	}
	jsonData, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode chain: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleInventoryStats summarizes the loaded export as a markdown table
// or a JSON document, depending on the format parameter.
func handleInventoryStats(request mcp.CallToolRequest, inv *inventory.Inventory) (*mcp.CallToolResult, error) {
	format := request.GetString("format", "markdown")

	switch format {
	case "json":
		jsonData, err := json.MarshalIndent(statsDocument(inv), "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode stats: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	case "markdown":
		return mcp.NewToolResultText(statsMarkdown(inv)), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: use 'markdown' or 'json'", format)), nil
	}
}

// statsMarkdown renders the inventory summary as a markdown table with
// the resolver cache report appended.
func statsMarkdown(inv *inventory.Inventory) string {
	stats := inv.Stats()

	var buf strings.Builder
	fmt.Fprintf(&buf, "Schema %s, %d canonical columns\n", inv.Version(), len(inv.Header()))
	fmt.Fprintf(&buf, "Root stores: %s\n\n", strings.Join(inv.Stores(), ", "))

	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Metric", "Value"})
	table.Bulk([][]string{
		{"Records", strconv.Itoa(stats.Records)},
		{"Root certificates", strconv.Itoa(stats.RootCerts)},
		{"Intermediate certificates", strconv.Itoa(stats.Intermediates)},
		{"Roots included in a store", strconv.Itoa(stats.TrustedRoots)},
		{"Intermediates chaining up", strconv.Itoa(stats.ChainsUp)},
		{"Revoked", strconv.Itoa(stats.Revoked)},
		{"Hierarchy roots", strconv.Itoa(stats.Roots)},
	})
	table.Render()

	buf.WriteString("\n" + country.GetCacheStats() + "\n")
	return buf.String()
}

// statsDocument builds the JSON form of the inventory summary, shared by
// the stats tool and the summary resource.
func statsDocument(inv *inventory.Inventory) map[string]any {
	stats := inv.Stats()
	cache := country.GetCacheMetrics()

	return map[string]any{
		"schema":                   string(inv.Version()),
		"columns":                  len(inv.Header()),
		"rootStores":               inv.Stores(),
		"records":                  stats.Records,
		"rootCertificates":         stats.RootCerts,
		"intermediateCertificates": stats.Intermediates,
		"trustedRoots":             stats.TrustedRoots,
		"chainingIntermediates":    stats.ChainsUp,
		"revoked":                  stats.Revoked,
		"hierarchyRoots":           stats.Roots,
		"resolverCache": map[string]any{
			"size":   cache.Size,
			"hits":   cache.Hits,
			"misses": cache.Misses,
		},
	}
}

// recordFields maps canonical column names to their typed values,
// skipping cells the export left empty. Dates are reduced to their
// calendar day, matching the workbook rendering.
func recordFields(inv *inventory.Inventory, row []any) map[string]any {
	header := inv.Header()

	fields := make(map[string]any, len(row))
	for i, cell := range row {
		value := fieldValue(cell)
		if value == nil {
			continue
		}
		fields[header[i]] = value
	}
	return fields
}

func fieldValue(cell any) any {
	switch v := cell.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return v
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return v
	}
}

func hopRole(root bool) string {
	if root {
		return "Root CA Certificate"
	}
	return "Intermediate CA Certificate"
}
