// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package country

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Resolve maps a free-form country name to its ISO 3166-1 alpha-2 code.
//
// Resolution happens in order:
//  1. A two-character pure-ASCII value is assumed to already be a code and
//     is returned unchanged.
//  2. Exact (case-insensitive) match against the official English country
//     names from CLDR.
//  3. Exact (case-insensitive) match against the embedded short-name and
//     legacy variants, scanned in ascending code order so repeated runs
//     resolve identically.
//
// Resolve returns the empty string when nothing matches. Results are
// memoized; see ResetCache.
//
// Resolve is safe for concurrent use by multiple goroutines.
func Resolve(name string) string {
	if code, ok := cachedCode(name); ok {
		return code
	}

	code := resolve(name)
	storeCode(name, code)
	return code
}

func resolve(name string) string {
	if len(name) == 2 && isASCII(name) {
		return name
	}

	loadTables()

	if code, ok := officialByName[foldKey(name)]; ok {
		return code
	}

	for _, entry := range variantTable {
		for _, alias := range entry.aliases {
			if strings.EqualFold(alias, name) {
				return entry.code
			}
		}
	}

	return ""
}

// isASCII reports whether s contains only ASCII bytes.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// foldKey normalizes a name for the official-name map lookup.
func foldKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var (
	tablesOnce     sync.Once
	officialByName map[string]string
	variantTable   []variantEntry
)

// loadTables builds the lookup tables on first use. Building the official
// table walks every two-letter region candidate once, which is cheap enough
// to not be worth precomputing at startup for commands that never resolve a
// country.
func loadTables() {
	tablesOnce.Do(func() {
		officialByName = buildOfficialNames()
		variantTable = buildVariantTable()
	})
}

// buildOfficialNames enumerates AA..ZZ through the BCP 47 region parser and
// keeps everything CLDR classifies as a country, keyed by its lowercased
// official English name.
func buildOfficialNames() map[string]string {
	names := make(map[string]string, 256)
	regions := display.English.Regions()

	code := [2]byte{}
	for a := byte('A'); a <= 'Z'; a++ {
		for b := byte('A'); b <= 'Z'; b++ {
			code[0], code[1] = a, b

			region, err := language.ParseRegion(string(code[:]))
			if err != nil || !region.IsCountry() {
				continue
			}

			name := regions.Name(region)
			if name == "" {
				continue
			}

			// ParseRegion canonicalizes deprecated codes, so several inputs
			// can land on the same region; the mapping is identical either way.
			names[foldKey(name)] = region.String()
		}
	}

	return names
}

type variantEntry struct {
	code    string
	aliases []string
}

// buildVariantTable parses the embedded variants and fixes the scan order.
func buildVariantTable() []variantEntry {
	byCode, err := parseShortNames()
	if err != nil {
		// The table is embedded in the binary; failing to parse it means the
		// build itself is broken.
		panic("country: invalid embedded short_names.yaml: " + err.Error())
	}

	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	table := make([]variantEntry, 0, len(codes))
	for _, code := range codes {
		table = append(table, variantEntry{code: code, aliases: byCode[code]})
	}
	return table
}
