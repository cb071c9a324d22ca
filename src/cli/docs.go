// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the CCADB
// certificates tabular converter. It implements a Cobra-based CLI with
// three subcommands: convert (CSV export to styled workbook), inspect
// (summary table without a workbook) and lookup (find certificates by
// fingerprint, record ID or certificate file, with an optional trust
// chain tree). The package handles config merging, context cancellation,
// and integrates with the logger package for progress reporting.
package cli
