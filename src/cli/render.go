// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/forest"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/inventory"
)

// renderStats formats the inventory summary as a markdown table.
func renderStats(inv *inventory.Inventory) string {
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
	return buf.String()
}

// renderRecord formats one canonical record as a two-column markdown
// table, skipping cells the export left empty.
func renderRecord(inv *inventory.Inventory, row []any) string {
	header := inv.Header()

	var rows [][]string
	for i, cell := range row {
		value := formatCell(cell)
		if value == "" {
			continue
		}
		rows = append(rows, []string{header[i], value})
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header([]string{"Field", "Value"})
	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// renderChain formats an ancestry path as an ASCII tree, leaf first, with
// the propagated trust verdict on every hop.
func renderChain(hops []inventory.ChainHop) string {
	var result strings.Builder
	result.WriteString("Trust chain:\n")
	for i, hop := range hops {
		connector := "├── "
		if i == len(hops)-1 {
			connector = "└── "
		}

		label := hop.Name
		if label == "" {
			label = hop.ID
		}
		result.WriteString(connector + fmt.Sprintf("[%s] %s (%s)", trustIcon(hop.Trust), label, hopRole(hop)) + "\n")
	}
	return result.String()
}

func trustIcon(t forest.Trust) string {
	switch t {
	case forest.TrustTrusted:
		return "✓"
	case forest.TrustUntrusted:
		return "✗"
	default:
		return "?"
	}
}

func hopRole(hop inventory.ChainHop) string {
	if hop.Root {
		return "Root CA Certificate"
	}
	return "Intermediate CA Certificate"
}

// formatCell renders one canonical cell for terminal output. Multi-line
// cells (the CRL list) are joined so the table stays one row per field.
func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return strings.ReplaceAll(v, "\n", "; ")
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}
