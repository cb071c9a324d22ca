// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// ccadb-certificates-tabular converts the CCADB AllCertificateRecords CSV
// export into a styled XLSX workbook and answers trust questions about
// the export from the command line.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/kidmin/ccadb-certificates-tabular/cmd/ccadb-certificates-tabular@latest
//
// # Usage
//
//	ccadb-certificates-tabular convert -f CCADB_CSV [FLAGS]
//	ccadb-certificates-tabular inspect -f CCADB_CSV
//	ccadb-certificates-tabular lookup  -f CCADB_CSV (--sha256 HEX | --id ID | --cert FILE) [--chain]
//
// # Flags
//
//	-f, --file    CCADB CSV export path [required unless set by config]
//	    --schema  Export layout version: v1, v1r2, v1r3, v1r4, v2 (default v2)
//	    --config  Config file, YAML or JSON (default $CCADB_TABULAR_CONFIG_FILE)
//	-q, --quiet   Suppress phase progress output
//	-o, --output  Workbook path, convert only (default CCADB-certificates.xlsx)
//
// # Examples
//
// Convert the current export into the default workbook:
//
//	ccadb-certificates-tabular convert -f CCADBcerts.csv
//
// Convert an older export revision to a chosen path:
//
//	ccadb-certificates-tabular convert -f archive-2021.csv --schema v1r4 -o archive.xlsx
//
// Summarize the export without writing a workbook:
//
//	ccadb-certificates-tabular inspect -f CCADBcerts.csv
//
// Look up every certificate of a PEM bundle and print its trust chain:
//
//	ccadb-certificates-tabular lookup -f CCADBcerts.csv --cert chain.pem --chain
package main
