// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package inventory keeps a converted CCADB export resident in memory.
//
// Query frontends (the lookup and inspect commands, the MCP server) need
// random access the streaming pipeline does not give them: find a record
// by SHA-256 fingerprint, walk a certificate's ancestry, summarize the
// whole table. Load runs the regular conversion pipeline into an in-memory
// sink and indexes the result, so every consumer sees exactly the rows a
// workbook conversion would have produced.
package inventory
