// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/record"
)

// Highlight fills. Type colors follow the CCADB site's own palette; the
// rest flag states an auditor scans for first.
const (
	rootFillColor         = "fcf3d0"
	intermediateFillColor = "dceaf6"
	revokedFillColor      = "ff3333"
	constrainedFillColor  = "e9f3ec"
	untrustedFillColor    = "c0c0c0"
)

const (
	numFmtNumber = 1  // "0"
	numFmtText   = 49 // "@"

	borderThin   = 1
	borderDouble = 6
)

// styleSet holds every style ID the sink ever applies, interned once per
// workbook. The fill IDs come from NewConditionalStyle and are only valid
// inside SetConditionalFormat options.
type styleSet struct {
	header   int
	text     int
	date     int
	general  int
	number   int
	metadata int

	rootFill         int
	intermediateFill int
	revokedFill      int
	constrainedFill  int
	untrustedFill    int
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	var (
		set styleSet
		err error
	)

	style := func(s *excelize.Style) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = f.NewStyle(s)
		return id
	}
	fill := func(color string) int {
		if err != nil {
			return 0
		}
		var id int
		id, err = f.NewConditionalStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		return id
	}

	dataBorder := borders(borderThin, "bottom", "left", "right")
	dateFormat := "yyyy-mm-dd"

	set.header = style(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: append(borders(borderThin, "top", "left", "right"),
			excelize.Border{Type: "bottom", Color: "000000", Style: borderDouble}),
	})
	set.text = style(&excelize.Style{NumFmt: numFmtText, Border: dataBorder})
	set.date = style(&excelize.Style{CustomNumFmt: &dateFormat, Border: dataBorder})
	set.general = style(&excelize.Style{Border: dataBorder})
	set.number = style(&excelize.Style{NumFmt: numFmtNumber, Border: dataBorder})
	set.metadata = style(&excelize.Style{
		NumFmt: numFmtText,
		Border: borders(borderThin, "top", "bottom", "left", "right"),
	})

	set.rootFill = fill(rootFillColor)
	set.intermediateFill = fill(intermediateFillColor)
	set.revokedFill = fill(revokedFillColor)
	set.constrainedFill = fill(constrainedFillColor)
	set.untrustedFill = fill(untrustedFillColor)

	if err != nil {
		return styleSet{}, fmt.Errorf("xlsx: building styles: %w", err)
	}
	return set, nil
}

func borders(style int, sides ...string) []excelize.Border {
	out := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		out = append(out, excelize.Border{Type: side, Color: "000000", Style: style})
	}
	return out
}

// widthsV2 is the hand-tuned column width table for the 86-column layout,
// column A through CH.
var widthsV2 = []float64{
	14, 4, 36, 4, 24, 22, 24, 18, 18, 18, // A..J
	18, 4, 8, 8, 16, 4, 4, 12, 12, 4, // K..T
	4, 8, 36, 14, 14, 8, 24, 8, 14, 14, // U..AD
	12, 12, 12, 14, 14, 12, 12, 12, 14, 14, // AE..AN
	12, 12, 12, 14, 14, 12, 12, 12, 14, 14, // AO..AX
	12, 12, 12, 14, 14, 12, 12, 12, 14, 14, // AY..BH
	12, 12, 12, 14, 14, 8, 14, 12, 8, 14, // BI..BR
	12, 8, 14, 12, 14, 14, 14, 8, 8, 8, // BS..CB
	8, 14, 14, 12, 4, 4, // CC..CH
}

// classWidths derives widths for the pre-v2 layouts from the column
// classes, close enough to the v2 table that the older sheets read the
// same way.
func classWidths(classes record.ClassMap) []float64 {
	widths := make([]float64, classes.Width)
	for i := range widths {
		widths[i] = 14
	}
	for _, col := range classes.BoolColumns {
		widths[col] = 8
	}
	for _, col := range classes.DateColumns {
		widths[col] = 12
	}
	for _, col := range classes.StatusColumns {
		widths[col] = 18
	}
	if classes.CountColumn >= 0 {
		widths[classes.CountColumn] = 8
	}
	widths[classes.IDColumn] = 4
	widths[classes.NameColumn] = 36
	widths[classes.TypeColumn] = 22
	widths[classes.RevocationColumn] = 16
	widths[classes.CountryColumn] = 12
	widths[classes.CountryCodeColumn] = 4
	widths[classes.LinkColumn] = 4
	return widths
}
