// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package schema_test

import (
	"strings"
	"testing"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	for _, version := range schema.Versions() {
		layout, err := schema.Lookup(string(version))
		require.NoError(t, err, "Lookup(%q)", version)
		assert.Equal(t, version, layout.Version)
	}
}

func TestLookupUnknownVersion(t *testing.T) {
	_, err := schema.Lookup("v3")
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnknownVersion)
	// The message must name every supported version so the operator can fix
	// the flag without reading source.
	for _, version := range schema.Versions() {
		assert.Contains(t, err.Error(), string(version))
	}
}

func TestVersionsOrderedOldestFirst(t *testing.T) {
	want := []schema.Version{schema.V1, schema.V1R2, schema.V1R3, schema.V1R4, schema.V2}
	assert.Equal(t, want, schema.Versions())
}

func TestLatest(t *testing.T) {
	assert.Equal(t, schema.V2, schema.Latest().Version)
}

// TestLayoutInvariants checks that every registered layout is internally
// consistent: all referenced positions are inside the declared width, the
// status source is exactly one of split or composite, and the typed-column
// sets never overlap.
func TestLayoutInvariants(t *testing.T) {
	for _, version := range schema.Versions() {
		layout, err := schema.Lookup(string(version))
		require.NoError(t, err)

		t.Run(string(version), func(t *testing.T) {
			inWidth := func(name string, col int) {
				if col < 0 || col >= layout.Width {
					t.Errorf("%s = %d outside width %d", name, col, layout.Width)
				}
			}

			inWidth("OwnerColumn", layout.OwnerColumn)
			inWidth("IDColumn", layout.IDColumn)
			inWidth("NameColumn", layout.NameColumn)
			inWidth("ParentIDColumn", layout.ParentIDColumn)
			inWidth("TypeColumn", layout.TypeColumn)
			inWidth("SHA256Column", layout.SHA256Column)
			inWidth("RevocationColumn", layout.RevocationColumn)
			inWidth("ConstrainedColumn", layout.ConstrainedColumn)
			inWidth("CountryColumn", layout.CountryColumn)
			if layout.ListColumn >= 0 {
				inWidth("ListColumn", layout.ListColumn)
			}

			if layout.CompositeColumn >= 0 {
				inWidth("CompositeColumn", layout.CompositeColumn)
				assert.Empty(t, layout.StatusColumns, "composite layouts must not declare split status columns")
				assert.NotEmpty(t, layout.CompositeStores)
			} else {
				assert.NotEmpty(t, layout.StatusColumns)
				for _, col := range layout.StatusColumns {
					inWidth("StatusColumns", col)
				}
			}

			seen := map[int]string{}
			claim := func(kind string, cols []int) {
				for _, col := range cols {
					inWidth(kind, col)
					if prev, dup := seen[col]; dup {
						t.Errorf("column %d claimed by both %s and %s", col, prev, kind)
					}
					seen[col] = kind
				}
			}
			claim("bool", layout.BoolColumns)
			claim("date", layout.DateColumns)
			claim("hex", layout.HexColumns)
			if layout.ListColumn >= 0 {
				claim("list", []int{layout.ListColumn})
			}
		})
	}
}

func TestStatusesSplitLayout(t *testing.T) {
	layout, err := schema.Lookup("v2")
	require.NoError(t, err)

	raw := make([]string, layout.Width)
	raw[7] = "Included"
	raw[8] = "Not Included"
	raw[9] = "Disabled"
	raw[10] = "Removed"

	statuses, err := layout.Statuses(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Included", "Not Included", "Disabled", "Removed"}, statuses)
}

func TestStatusesCompositeLayout(t *testing.T) {
	layout, err := schema.Lookup("v1r2")
	require.NoError(t, err)

	raw := make([]string, layout.Width)
	raw[7] = "Apple: Included; Google Chrome: Included; Microsoft: Not Included; Mozilla: Included"

	statuses, err := layout.Statuses(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Included", "Included", "Not Included", "Included"}, statuses)
}

func TestSplitComposite(t *testing.T) {
	layout, err := schema.Lookup("v1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		cell    string
		want    []string
		wantErr bool
	}{
		{
			name: "AllStores",
			cell: "Google Chrome: Included; Microsoft: Included; Mozilla: Not Included",
			want: []string{"Included", "Included", "Not Included"},
		},
		{
			name: "OrderIndependent",
			cell: "Mozilla: Included; Google Chrome: Removed; Microsoft: Disabled",
			want: []string{"Removed", "Disabled", "Included"},
		},
		{
			name: "EmptyCellMeansNoDecisionYet",
			cell: "",
			want: []string{"", "", ""},
		},
		{
			name:    "MissingStore",
			cell:    "Google Chrome: Included; Mozilla: Included",
			wantErr: true,
		},
		{
			name:    "UnknownStore",
			cell:    "Google Chrome: Included; Microsoft: Included; Mozilla: Included; Apple: Included",
			wantErr: true,
		},
		{
			name:    "EntryWithoutStatus",
			cell:    "Google Chrome; Microsoft: Included; Mozilla: Included",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := layout.SplitComposite(tt.cell)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, schema.ErrMalformedComposite)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreNames(t *testing.T) {
	composite, err := schema.Lookup("v1r2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Google Chrome", "Microsoft", "Mozilla"},
		composite.StoreNames(nil))

	split, err := schema.Lookup("v2")
	require.NoError(t, err)

	header := make([]string, split.Width)
	header[7] = "Apple Status"
	header[8] = "Google Chrome Status"
	header[9] = "Microsoft Status"
	header[10] = "Mozilla Status"
	assert.Equal(t, []string{"Apple", "Google Chrome", "Microsoft", "Mozilla"},
		split.StoreNames(header))
}

func TestAnyIncluded(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     bool
	}{
		{name: "OneIncluded", statuses: []string{"Not Included", "Included", "", ""}, want: true},
		{name: "CaseInsensitive", statuses: []string{"INCLUDED"}, want: true},
		{name: "NoneIncluded", statuses: []string{"Not Included", "Removed", "Disabled"}, want: false},
		{name: "NotIncludedDoesNotMatch", statuses: []string{"Not Included"}, want: false},
		{name: "Empty", statuses: []string{"", "", "", ""}, want: false},
		{name: "Nil", statuses: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schema.AnyIncluded(tt.statuses))
		})
	}
}

func TestLayoutAccessors(t *testing.T) {
	layout, err := schema.Lookup("v2")
	require.NoError(t, err)

	raw := make([]string, layout.Width)
	raw[0] = "Example Trust Services"
	raw[1] = "0018Z00000abcde"
	raw[2] = "Example Root R1"
	raw[3] = "001o000000fghij"
	raw[5] = "Root Certificate"

	assert.Equal(t, "Example Trust Services", layout.Owner(raw))
	assert.Equal(t, "0018Z00000abcde", layout.ID(raw))
	assert.Equal(t, "Example Root R1", layout.Name(raw))
	assert.Equal(t, "001o000000fghij", layout.ParentID(raw))
	assert.True(t, layout.IsRoot(raw))
	assert.False(t, layout.IsIntermediate(raw))

	raw[5] = "Intermediate Certificate"
	assert.False(t, layout.IsRoot(raw))
	assert.True(t, layout.IsIntermediate(raw))

	// Owner rows in old exports are neither.
	raw[5] = "CA Owner"
	assert.False(t, layout.IsRoot(raw))
	assert.False(t, layout.IsIntermediate(raw))

	if !strings.EqualFold(layout.RootType, "root certificate") {
		t.Errorf("unexpected root type literal %q", layout.RootType)
	}
}
