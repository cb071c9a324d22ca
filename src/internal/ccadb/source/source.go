// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Record is one positional data record of the export.
type Record struct {
	Line   int // 1-based line the record starts on
	Fields []string
}

// Reader streams one CCADB CSV export. It is not safe for concurrent use.
type Reader struct {
	csv    *csv.Reader
	header []string
}

// NewReader wraps r, which must produce UTF-8 CSV text.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// Ragged records are passed through; the canonicalizer's width gate
	// reports them with record context instead of a bare csv.ParseError.
	cr.FieldsPerRecord = -1
	return &Reader{csv: cr}
}

// Header returns the export's header row, reading it on first use.
func (r *Reader) Header() ([]string, error) {
	if r.header != nil {
		return r.header, nil
	}
	fields, err := r.csv.Read()
	if err != nil {
		return nil, fmt.Errorf("source: reading header: %w", err)
	}
	r.header = fields
	return fields, nil
}

// Next returns the next data record, reading the header first if the
// caller has not. It returns io.EOF once the export is exhausted.
func (r *Reader) Next() (Record, error) {
	if r.header == nil {
		if _, err := r.Header(); err != nil {
			return Record{}, err
		}
	}

	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("source: %w", err)
	}

	line, _ := r.csv.FieldPos(0)
	return Record{Line: line, Fields: fields}, nil
}
