// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package xlsx

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/record"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/schema"
)

const (
	// DefaultPath is where the converted workbook lands unless the caller
	// asks otherwise.
	DefaultPath = "CCADB-certificates.xlsx"

	// SheetName holds the canonical certificate table.
	SheetName = "AllCertificateRecords"

	metadataSheet = "_metadata"

	sourceURL    = "https://www.ccadb.org/resources"
	generatorURL = "https://github.com/kidmin/ccadb-certificates-tabular"

	// linkGlyph is the visible text of every crt.sh hyperlink cell.
	linkGlyph = "\U0001F4DC"

	headerHeight = 14.25
	dataHeight   = 13.5
)

// Sink writes canonical rows into a workbook and saves it on Flush. It is
// single-use; create a fresh Sink per conversion.
type Sink struct {
	path string
	now  func() time.Time

	file    *excelize.File
	classes record.ClassMap
	styles  styleSet
	columns []string // spreadsheet column names indexed by canonical position
	rows    int
}

// NewSink returns a Sink that saves the workbook at path, or at
// DefaultPath when path is empty.
func NewSink(path string) *Sink {
	if path == "" {
		path = DefaultPath
	}
	return &Sink{path: path, now: time.Now}
}

// Path reports where Flush will save the workbook.
func (s *Sink) Path() string {
	return s.path
}

// WriteHeader creates the workbook, writes the bold header row and sets
// the column widths. It must be called exactly once, before any rows.
func (s *Sink) WriteHeader(classes record.ClassMap, names []string) error {
	if s.file != nil {
		return errors.New("xlsx: header already written")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsx: naming sheet: %w", err)
	}
	styles, err := newStyleSet(f)
	if err != nil {
		return err
	}

	s.file = f
	s.classes = classes
	s.styles = styles
	s.columns = make([]string, classes.Width)
	for i := range s.columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		s.columns[i] = name
	}

	if err := f.SetSheetRow(SheetName, "A1", &names); err != nil {
		return fmt.Errorf("xlsx: writing header: %w", err)
	}
	if err := f.SetRowHeight(SheetName, 1, headerHeight); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	last := s.columns[classes.Width-1]
	if err := f.SetCellStyle(SheetName, "A1", last+"1", styles.header); err != nil {
		return fmt.Errorf("xlsx: styling header: %w", err)
	}
	return s.setColumnWidths()
}

// WriteRow appends one canonical row. The crt.sh link cell is rendered as
// a glyph carrying the hyperlink rather than the bare URL.
func (s *Sink) WriteRow(cells []any) error {
	if s.file == nil {
		return errors.New("xlsx: row written before header")
	}
	s.rows++
	rowIdx := s.rows + 1

	anchor, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := s.file.SetSheetRow(SheetName, anchor, &cells); err != nil {
		return fmt.Errorf("xlsx: writing row %d: %w", s.rows, err)
	}
	if err := s.file.SetRowHeight(SheetName, rowIdx, dataHeight); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	return s.linkify(rowIdx, cells)
}

func (s *Sink) linkify(rowIdx int, cells []any) error {
	url, ok := cells[s.classes.LinkColumn].(string)
	if !ok || url == "" {
		return nil
	}
	cell := s.columns[s.classes.LinkColumn] + strconv.Itoa(rowIdx)
	if err := s.file.SetCellValue(SheetName, cell, linkGlyph); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := s.file.SetCellHyperLink(SheetName, cell, url, "External"); err != nil {
		return fmt.Errorf("xlsx: linking %s: %w", cell, err)
	}
	return nil
}

// Flush styles the data range, freezes the identity columns, applies the
// auto-filter and the conditional fills, writes the provenance sheet and
// saves the workbook. Nothing reaches disk before this point.
func (s *Sink) Flush() error {
	if s.file == nil {
		return errors.New("xlsx: flush before header")
	}
	if err := s.styleDataColumns(); err != nil {
		return err
	}
	if err := s.file.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      3,
		YSplit:      1,
		TopLeftCell: "D2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return fmt.Errorf("xlsx: freezing panes: %w", err)
	}
	last := s.columns[s.classes.Width-1]
	filterRange := fmt.Sprintf("A1:%s%d", last, s.rows+1)
	if err := s.file.AutoFilter(SheetName, filterRange, nil); err != nil {
		return fmt.Errorf("xlsx: auto-filter: %w", err)
	}
	if s.rows > 0 {
		if err := s.applyHighlights(); err != nil {
			return err
		}
	}
	if err := s.writeMetadata(); err != nil {
		return err
	}
	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("xlsx: saving workbook: %w", err)
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	return nil
}

func (s *Sink) setColumnWidths() error {
	widths := classWidths(s.classes)
	if s.classes.Version == schema.V2 {
		widths = widthsV2
	}
	for i, width := range widths {
		col := s.columns[i]
		if err := s.file.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("xlsx: sizing column %s: %w", col, err)
		}
	}
	return nil
}

// styleDataColumns applies per-class number formats over the data range.
// Styling after the rows are written keeps excelize's automatic date
// format from leaking into the date columns.
func (s *Sink) styleDataColumns() error {
	if s.rows == 0 {
		return nil
	}
	byColumn := make([]int, s.classes.Width)
	for i := range byColumn {
		byColumn[i] = s.styles.text
	}
	for _, col := range s.classes.BoolColumns {
		byColumn[col] = s.styles.general
	}
	for _, col := range s.classes.DateColumns {
		byColumn[col] = s.styles.date
	}
	if s.classes.CountColumn >= 0 {
		byColumn[s.classes.CountColumn] = s.styles.number
	}

	lastRow := strconv.Itoa(s.rows + 1)
	for i, styleID := range byColumn {
		col := s.columns[i]
		if err := s.file.SetCellStyle(SheetName, col+"2", col+lastRow, styleID); err != nil {
			return fmt.Errorf("xlsx: styling column %s: %w", col, err)
		}
	}
	return nil
}

func (s *Sink) applyHighlights() error {
	quoted := func(v string) string { return `"` + v + `"` }
	set := func(col int, fill int, values ...string) error {
		opts := make([]excelize.ConditionalFormatOptions, 0, len(values))
		for _, value := range values {
			id := fill
			opts = append(opts, excelize.ConditionalFormatOptions{
				Type:     "cell",
				Criteria: "equal to",
				Value:    value,
				Format:   &id,
			})
		}
		name := s.columns[col]
		ref := fmt.Sprintf("%s2:%s%d", name, name, s.rows+1)
		if err := s.file.SetConditionalFormat(SheetName, ref, opts); err != nil {
			return fmt.Errorf("xlsx: highlighting %s: %w", name, err)
		}
		return nil
	}

	if err := set(s.classes.TypeColumn, s.styles.rootFill, quoted(s.classes.RootType)); err != nil {
		return err
	}
	if err := set(s.classes.TypeColumn, s.styles.intermediateFill, quoted(s.classes.IntermediateType)); err != nil {
		return err
	}
	if err := set(s.classes.RevocationColumn, s.styles.revokedFill,
		quoted("Revoked"), quoted("Parent Cert Revoked")); err != nil {
		return err
	}
	if err := set(s.classes.ConstrainedColumn, s.styles.constrainedFill, "TRUE"); err != nil {
		return err
	}
	for _, col := range s.classes.TrustColumns {
		if err := set(col, s.styles.untrustedFill, "FALSE"); err != nil {
			return err
		}
	}
	return nil
}

// writeMetadata records where the data came from and when it was
// converted, on its own small sheet.
func (s *Sink) writeMetadata() error {
	if _, err := s.file.NewSheet(metadataSheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := s.file.SetColWidth(metadataSheet, "A", "A", 16); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := s.file.SetColWidth(metadataSheet, "B", "B", 48); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	rows := [][]any{
		{"source", sourceURL},
		{"generated at", s.now().UTC().Format(time.RFC3339)},
		{"generator", generatorURL},
	}
	for i := range rows {
		anchor := "A" + strconv.Itoa(i+1)
		if err := s.file.SetSheetRow(metadataSheet, anchor, &rows[i]); err != nil {
			return fmt.Errorf("xlsx: writing metadata: %w", err)
		}
	}
	if err := s.file.SetCellStyle(metadataSheet, "A1", "B3", s.styles.metadata); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	index, err := s.file.GetSheetIndex(SheetName)
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	s.file.SetActiveSheet(index)
	return nil
}
