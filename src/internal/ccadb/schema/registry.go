// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVersion is returned by Lookup for versions outside the registry.
var ErrUnknownVersion = errors.New("schema: unknown layout version")

// layouts holds every supported CSV layout, oldest first. Positions follow
// the column order of the corresponding CCADB export revision; v2 matches
// the current AllCertificateRecordsCSVFormatv2 report.
var layouts = []Layout{
	{
		Version:           V1,
		Width:             47,
		OwnerColumn:       0,
		IDColumn:          1,
		NameColumn:        2,
		ParentIDColumn:    3,
		TypeColumn:        5,
		RootType:          "Root Certificate",
		IntermediateType:  "Intermediate Certificate",
		CompositeColumn:   7,
		CompositeStores:   []string{"Google Chrome", "Microsoft", "Mozilla"},
		BoolColumns:       []int{15, 18},
		DateColumns:       []int{11, 12, 21, 22, 23, 26, 27, 28, 31, 32, 33, 35, 37},
		HexColumns:        []int{13, 14},
		ListColumn:        -1,
		SHA256Column:      9,
		RevocationColumn:  8,
		ConstrainedColumn: 15,
		CountryColumn:     44,
	},
	{
		Version:           V1R2,
		Width:             49,
		OwnerColumn:       0,
		IDColumn:          1,
		NameColumn:        2,
		ParentIDColumn:    3,
		TypeColumn:        5,
		RootType:          "Root Certificate",
		IntermediateType:  "Intermediate Certificate",
		CompositeColumn:   7,
		CompositeStores:   []string{"Apple", "Google Chrome", "Microsoft", "Mozilla"},
		BoolColumns:       []int{15, 20},
		DateColumns:       []int{11, 12, 23, 24, 25, 28, 29, 30, 33, 34, 35, 37, 39},
		HexColumns:        []int{13, 14},
		ListColumn:        18,
		SHA256Column:      9,
		RevocationColumn:  8,
		ConstrainedColumn: 15,
		CountryColumn:     46,
	},
	{
		Version:           V1R3,
		Width:             53,
		OwnerColumn:       0,
		IDColumn:          1,
		NameColumn:        2,
		ParentIDColumn:    3,
		TypeColumn:        5,
		RootType:          "Root Certificate",
		IntermediateType:  "Intermediate Certificate",
		StatusColumns:     []int{7, 8, 9, 10},
		CompositeColumn:   -1,
		BoolColumns:       []int{19, 24},
		DateColumns:       []int{15, 16, 27, 28, 29, 32, 33, 34, 37, 38, 39, 41, 43},
		HexColumns:        []int{17, 18},
		ListColumn:        22,
		SHA256Column:      13,
		RevocationColumn:  12,
		ConstrainedColumn: 19,
		CountryColumn:     50,
	},
	{
		Version:          V1R4,
		Width:            68,
		OwnerColumn:      0,
		IDColumn:         1,
		NameColumn:       2,
		ParentIDColumn:   3,
		TypeColumn:       5,
		RootType:         "Root Certificate",
		IntermediateType: "Intermediate Certificate",
		StatusColumns:    []int{7, 8, 9, 10},
		CompositeColumn:  -1,
		BoolColumns:      []int{19, 24},
		DateColumns: []int{
			15, 16,
			27, 28, 29,
			32, 33, 34,
			37, 38, 39,
			42, 43, 44,
			47, 48, 49,
			52, 53, 54,
			56, 58,
		},
		HexColumns:        []int{17, 18},
		ListColumn:        22,
		SHA256Column:      13,
		RevocationColumn:  12,
		ConstrainedColumn: 19,
		CountryColumn:     65,
	},
	{
		Version:          V2,
		Width:            81,
		OwnerColumn:      0,
		IDColumn:         1,
		NameColumn:       2,
		ParentIDColumn:   3,
		TypeColumn:       5,
		RootType:         "Root Certificate",
		IntermediateType: "Intermediate Certificate",
		StatusColumns:    []int{7, 8, 9, 10},
		CompositeColumn:  -1,
		BoolColumns:      []int{19, 24, 62, 65, 68, 74, 75, 76, 77},
		DateColumns: []int{
			15, 16,
			27, 28, 29,
			32, 33, 34,
			37, 38, 39,
			42, 43, 44,
			47, 48, 49,
			52, 53, 54,
			57, 58, 59,
			64, 67, 70,
		},
		HexColumns:        []int{17, 18},
		ListColumn:        22,
		SHA256Column:      13,
		RevocationColumn:  12,
		ConstrainedColumn: 19,
		CountryColumn:     78,
	},
}

// Lookup returns the layout for version. The version string must match one
// of the registered Version constants exactly; selecting the right version
// for a given export is the caller's responsibility.
func Lookup(version string) (*Layout, error) {
	for i := range layouts {
		if string(layouts[i].Version) == version {
			return &layouts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownVersion, version, supportedList())
}

// Versions returns the registered layout versions, oldest first.
func Versions() []Version {
	versions := make([]Version, len(layouts))
	for i := range layouts {
		versions[i] = layouts[i].Version
	}
	return versions
}

// Latest returns the most recent layout. Used as the default when the
// caller does not pin a version.
func Latest() *Layout { return &layouts[len(layouts)-1] }

func supportedList() string {
	names := make([]string, len(layouts))
	for i := range layouts {
		names[i] = string(layouts[i].Version)
	}
	return strings.Join(names, ", ")
}
