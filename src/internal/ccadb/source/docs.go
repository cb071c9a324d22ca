// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package source streams CCADB CSV exports as positional records.
//
// The reader is a thin wrapper over encoding/csv that remembers where each
// record started, so structural errors further down the pipeline can point
// at the exact line of a multi-megabyte export. It deliberately does not
// enforce a column count: the schema layout's width gate owns that check
// and reports it per record.
package source
