// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package xlsx_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/forest"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/record"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/schema"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/xlsx"
)

const (
	rootSHA = "4348A0E9444C78CB265E058D5E8944B4D84F9662BD26DB257F8934A443C70161"
	intSHA  = "06B25927C42A721631C1EFD9431E648FA62E1E39EEB6E9C7B3CD5BB4D7B1B2C1"
)

func v2Header() []string {
	h := make([]string, 81)
	for i := range h {
		h[i] = fmt.Sprintf("Column %02d", i)
	}
	h[22] = "JSON Array of Partitioned CRLs"
	h[78] = "Country"
	return h
}

func v2Record(id, parent, certType, sha string) []string {
	r := make([]string, 81)
	r[0] = "Example Trust Services"
	r[1] = id
	r[2] = "Example " + id
	r[3] = parent
	r[5] = certType
	r[13] = sha
	return r
}

// writeWorkbook converts the raw v2 rows through the real canonicalizer
// and saves them with a fresh Sink, returning the workbook path and the
// canonical header names.
func writeWorkbook(t *testing.T, rawRows [][]string) (string, []string) {
	t.Helper()

	layout, err := schema.Lookup("v2")
	require.NoError(t, err)
	canon := record.New(layout, map[string]forest.Trust{"int-1": forest.TrustTrusted})

	path := filepath.Join(t.TempDir(), "out.xlsx")
	sink := xlsx.NewSink(path)

	names, err := canon.Header(v2Header())
	require.NoError(t, err)
	require.NoError(t, sink.WriteHeader(canon.ClassMap(), names))
	for _, raw := range rawRows {
		cells, err := canon.Row(raw)
		require.NoError(t, err)
		require.NoError(t, sink.WriteRow(cells))
	}
	require.NoError(t, sink.Flush())
	return path, names
}

func TestSinkRoundTrip(t *testing.T) {
	root := v2Record("root-1", "", "Root Certificate", rootSHA)
	root[7] = "Included"
	root[15] = "2024.05.01"
	root[19] = "true"
	root[22] = `["http://crl.example/a.crl","http://crl.example/b.crl"]`
	root[78] = "Japan"
	intermediate := v2Record("int-1", "root-1", "Intermediate Certificate", intSHA)

	path, names := writeWorkbook(t, [][]string{root, intermediate})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		value, err := f.GetCellValue(xlsx.SheetName, ref)
		require.NoError(t, err)
		return value
	}

	assert.Equal(t, names[0], cell("A1"))
	assert.Equal(t, "X-Included in any Root Store?", cell("M1"))
	assert.Equal(t, "X-crt.sh link", cell("CH1"))

	assert.Equal(t, "root-1", cell("B2"))
	assert.Equal(t, "TRUE", cell("M2"))
	assert.Equal(t, "", cell("N2")) // roots carry no chains-up verdict
	assert.Equal(t, "TRUE", cell("N3"))
	assert.Equal(t, "2024-05-01", cell("R2"))
	assert.Equal(t, "TRUE", cell("V2"))
	assert.Equal(t, "http://crl.example/a.crl\nhttp://crl.example/b.crl", cell("Y2"))
	assert.Equal(t, "2", cell("Z2"))
	assert.Equal(t, "Japan", cell("CF2"))
	assert.Equal(t, "JP", cell("CG2"))
}

func TestSinkHyperlinks(t *testing.T) {
	root := v2Record("root-1", "", "Root Certificate", rootSHA)
	path, _ := writeWorkbook(t, [][]string{root})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	glyph, err := f.GetCellValue(xlsx.SheetName, "CH2")
	require.NoError(t, err)
	assert.Equal(t, "\U0001F4DC", glyph)

	linked, target, err := f.GetCellHyperLink(xlsx.SheetName, "CH2")
	require.NoError(t, err)
	assert.True(t, linked)
	assert.Equal(t, "https://crt.sh/?sha256="+rootSHA, target)
}

func TestSinkSheetChrome(t *testing.T) {
	root := v2Record("root-1", "", "Root Certificate", rootSHA)
	intermediate := v2Record("int-1", "root-1", "Intermediate Certificate", intSHA)
	path, _ := writeWorkbook(t, [][]string{root, intermediate})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{xlsx.SheetName, "_metadata"}, f.GetSheetList())

	width := func(col string) float64 {
		w, err := f.GetColWidth(xlsx.SheetName, col)
		require.NoError(t, err)
		return w
	}
	assert.InDelta(t, 14, width("A"), 0.01)
	assert.InDelta(t, 4, width("B"), 0.01)
	assert.InDelta(t, 36, width("C"), 0.01)
	assert.InDelta(t, 4, width("CH"), 0.01)

	panes, err := f.GetPanes(xlsx.SheetName)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 3, panes.XSplit)
	assert.Equal(t, 1, panes.YSplit)
	assert.Equal(t, "D2", panes.TopLeftCell)

	formats, err := f.GetConditionalFormats(xlsx.SheetName)
	require.NoError(t, err)
	assert.Contains(t, formats, "F2:F3")
	assert.Contains(t, formats, "M2:M3")
	assert.Contains(t, formats, "N2:N3")
	assert.Contains(t, formats, "O2:O3")
	assert.Contains(t, formats, "V2:V3")
}

func TestSinkMetadataSheet(t *testing.T) {
	path, _ := writeWorkbook(t, [][]string{v2Record("root-1", "", "Root Certificate", rootSHA)})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("_metadata")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"source", "https://www.ccadb.org/resources"}, rows[0])
	assert.Equal(t, []string{"generator", "https://github.com/kidmin/ccadb-certificates-tabular"}, rows[2])

	require.Len(t, rows[1], 2)
	assert.Equal(t, "generated at", rows[1][0])
	stamp, err := time.Parse(time.RFC3339, rows[1][1])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), stamp, time.Minute)

	widthA, err := f.GetColWidth("_metadata", "A")
	require.NoError(t, err)
	assert.InDelta(t, 16, widthA, 0.01)
	widthB, err := f.GetColWidth("_metadata", "B")
	require.NoError(t, err)
	assert.InDelta(t, 48, widthB, 0.01)
}

func TestSinkEmptyTable(t *testing.T) {
	path, _ := writeWorkbook(t, nil)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	formats, err := f.GetConditionalFormats(xlsx.SheetName)
	require.NoError(t, err)
	assert.Empty(t, formats)
}

func TestSinkClassDefaultWidths(t *testing.T) {
	layout, err := schema.Lookup("v1")
	require.NoError(t, err)
	canon := record.New(layout, nil)

	header := make([]string, 47)
	for i := range header {
		header[i] = fmt.Sprintf("Column %02d", i)
	}
	names, err := canon.Header(header)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "v1.xlsx")
	sink := xlsx.NewSink(path)
	require.NoError(t, sink.WriteHeader(canon.ClassMap(), names))
	require.NoError(t, sink.Flush())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	width := func(col string) float64 {
		w, err := f.GetColWidth(xlsx.SheetName, col)
		require.NoError(t, err)
		return w
	}
	assert.InDelta(t, 36, width("C"), 0.01) // certificate name
	assert.InDelta(t, 22, width("F"), 0.01) // certificate type
	assert.InDelta(t, 18, width("H"), 0.01) // exploded store status
	assert.InDelta(t, 8, width("K"), 0.01)  // derived trust pair
	assert.InDelta(t, 16, width("M"), 0.01) // revocation status
}

func TestSinkStateErrors(t *testing.T) {
	sink := xlsx.NewSink(filepath.Join(t.TempDir(), "state.xlsx"))
	assert.Error(t, sink.WriteRow([]any{"x"}))
	assert.Error(t, sink.Flush())

	layout, err := schema.Lookup("v2")
	require.NoError(t, err)
	canon := record.New(layout, nil)
	names, err := canon.Header(v2Header())
	require.NoError(t, err)
	require.NoError(t, sink.WriteHeader(canon.ClassMap(), names))
	assert.Error(t, sink.WriteHeader(canon.ClassMap(), names))
}

func TestSinkDefaultPath(t *testing.T) {
	assert.Equal(t, xlsx.DefaultPath, xlsx.NewSink("").Path())
}
