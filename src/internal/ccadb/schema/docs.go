// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package schema describes the known CCADB AllCertificateRecords CSV
// layouts as pure data.
//
// CCADB has reshaped its certificate-records export several times: columns
// were added, the per-store inclusion statuses were split out of a single
// composite column, and audit blocks grew as new root-store programs
// appeared. Each shape is captured here as a Layout value: expected column
// count plus the positions every downstream stage needs (identity columns,
// status columns, typed-value columns, the country column).
//
// The set is closed and enumerable. A Layout never probes the input; callers
// select a version explicitly and the only self-check performed downstream
// is the record-width gate. Layouts carry no behavior beyond small accessors
// over a raw record, which keeps adding the next CCADB revision to a matter
// of appending one more value to the registry.
package schema
