// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package record turns raw CCADB CSV records into canonical typed rows.
//
// A Canonicalizer is built from a schema layout plus the trust verdicts the
// hierarchy walk produced. Header and Row run the identical operation
// sequence, so the emitted header always lines up with the emitted cells:
// value transforms first (status flags to bool, base64 key identifiers to
// colon-separated hex, dotted dates to time.Time, the partitioned-CRL JSON
// array to a newline-joined list), then the structural reshaping that moves
// the country column to the end and adds the derived columns: the alpha-2
// country code, the crt.sh lookup link, the CRL item count, and the two
// root-store trust verdicts. Derived column names carry an X- prefix so
// they can never collide with a name CCADB adds in a later revision.
//
// Canonical cells are limited to string, bool, int, time.Time and nil. The
// ClassMap records where the typed columns land after reshaping, which lets
// the workbook sink style every layout version without re-parsing cells.
package record
