// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package country maps free-form country names from CCADB exports to
// ISO 3166-1 alpha-2 codes.
//
// CCADB operators type country names by hand, so the same country shows up
// as "United States", "USA" or "US" across records. Resolve normalizes all
// of them to the two-letter code and returns the empty string when no
// mapping exists; an unresolved name is a data-quality condition, never an
// error.
//
// The official English name table is derived from the CLDR data shipped
// with [golang.org/x/text]; spelling variants and legacy names live in an
// embedded table (short_names.yaml). Results are memoized for the lifetime
// of the process because a CCADB dump repeats a small set of names tens of
// thousands of times.
package country
