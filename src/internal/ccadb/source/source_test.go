// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package source_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/source"
)

func TestReader(t *testing.T) {
	csv := "CA Owner,Certificate Name\n" +
		"Example CA,Example Root R1\n" +
		"Example CA,Example Issuing CA 1\n"

	r := source.NewReader(strings.NewReader(csv))

	header, err := r.Header()
	if err != nil {
		t.Fatalf("Header() error: %v", err)
	}
	if len(header) != 2 || header[0] != "CA Owner" {
		t.Fatalf("Header() = %v", header)
	}

	first, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if first.Line != 2 {
		t.Errorf("first record line = %d, want 2", first.Line)
	}
	if first.Fields[1] != "Example Root R1" {
		t.Errorf("first record fields = %v", first.Fields)
	}

	second, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if second.Line != 3 {
		t.Errorf("second record line = %d, want 3", second.Line)
	}

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("Next() after last record = %v, want io.EOF", err)
	}
}

// TestReaderQuotedNewlines: a quoted field spanning lines must not throw
// off the line numbers of the records after it.
func TestReaderQuotedNewlines(t *testing.T) {
	csv := "Name,Comment\n" +
		"first,\"line one\nline two\"\n" +
		"second,plain\n"

	r := source.NewReader(strings.NewReader(csv))

	first, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if first.Line != 2 {
		t.Errorf("first record line = %d, want 2", first.Line)
	}

	second, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if second.Line != 4 {
		t.Errorf("second record line = %d, want 4 (after the folded field)", second.Line)
	}
}

// TestReaderRaggedRecords: column-count enforcement belongs to the width
// gate, so the reader must hand ragged records through untouched.
func TestReaderRaggedRecords(t *testing.T) {
	csv := "a,b,c\n" +
		"1,2,3\n" +
		"1,2\n" +
		"1,2,3,4\n"

	r := source.NewReader(strings.NewReader(csv))

	widths := []int{3, 2, 4}
	for i, want := range widths {
		rec, err := r.Next()
		if err != nil {
			t.Fatalf("Next() #%d error: %v", i+1, err)
		}
		if len(rec.Fields) != want {
			t.Errorf("record %d width = %d, want %d", i+1, len(rec.Fields), want)
		}
	}
}

// TestReaderImplicitHeader: Next before Header must still skip the header
// row.
func TestReaderImplicitHeader(t *testing.T) {
	r := source.NewReader(strings.NewReader("h1,h2\nv1,v2\n"))

	rec, err := r.Next()
	if err != nil {
		t.Fatalf("Next() error: %v", err)
	}
	if rec.Fields[0] != "v1" {
		t.Errorf("Next() returned %v, want the first data record", rec.Fields)
	}

	header, err := r.Header()
	if err != nil {
		t.Fatalf("Header() error: %v", err)
	}
	if header[0] != "h1" {
		t.Errorf("Header() = %v", header)
	}
}

func TestReaderEmptyInput(t *testing.T) {
	r := source.NewReader(strings.NewReader(""))

	if _, err := r.Header(); err == nil {
		t.Fatal("Header() on empty input: expected error")
	}
}
