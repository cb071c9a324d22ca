// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package xlsx renders the canonical CCADB table into a styled workbook.
//
// The Sink satisfies the conversion pipeline's sink contract and is the
// only component that knows about presentation: column widths, number
// formats, borders, frozen panes, the auto-filter and the conditional
// fills that make revoked or untrusted certificates stand out when the
// sheet is opened in a spreadsheet application.
//
// Everything positional is driven by the canonicalizer's ClassMap, so one
// sink body styles every supported schema version. Nothing is written to
// disk until Flush; an aborted conversion never leaves a workbook behind.
package xlsx
