// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server frontend for the [CCADB]
// certificate inventory. It loads one AllCertificateRecords export at
// startup, converts it through the regular canonicalization pipeline,
// and keeps the result resident for the lifetime of the process.
// Tools expose record lookup by SHA-256 fingerprint or Salesforce
// record ID, trust chain resolution with the propagated per-hop
// verdict, and inventory statistics.
//
// Configuration comes from the file named by CCADB_TABULAR_CONFIG_FILE,
// the same file the CLI reads with --config.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
// [CCADB]: https://www.ccadb.org
package mcpserver
