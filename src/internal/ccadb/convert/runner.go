// Copyright (c) 2025 kidmin All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/forest"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/record"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/schema"
	"github.com/kidmin/ccadb-certificates-tabular/src/internal/ccadb/source"
	"github.com/kidmin/ccadb-certificates-tabular/src/logger"
)

// contextCheckInterval is how many records pass between context polls; a
// poll per record would cost more than reading the record itself.
const contextCheckInterval = 1024

// Source opens the CSV stream. The pipeline invokes it once per pass, so
// it must be repeatable; FileSource is the common case.
type Source func() (io.ReadCloser, error)

// FileSource returns a Source that re-opens csvPath for every pass.
func FileSource(csvPath string) Source {
	return func() (io.ReadCloser, error) { return os.Open(csvPath) }
}

// Sink consumes the canonical table. WriteHeader is called exactly once,
// before any row; Flush is called exactly once, after the last row, and is
// the only point where a sink should publish its artifact.
type Sink interface {
	WriteHeader(classes record.ClassMap, names []string) error
	WriteRow(cells []any) error
	Flush() error
}

// Stats summarizes one conversion run.
type Stats struct {
	Records int // data records read, header excluded
	Roots   int // traversal roots of the certificate hierarchy
}

// Result carries what a run learned beyond the sink's output. Frontends
// that keep the inventory resident reuse the forest for ancestry queries
// instead of rebuilding it.
type Result struct {
	Stats  Stats
	Forest *forest.Forest
	Trust  map[string]forest.Trust
}

// Runner converts one CCADB export using a fixed schema layout.
type Runner struct {
	layout *schema.Layout
	log    logger.Logger
}

// NewRunner returns a Runner for the given layout, logging phase
// boundaries through log.
func NewRunner(layout *schema.Layout, log logger.Logger) *Runner {
	return &Runner{layout: layout, log: log}
}

// Run executes both passes and flushes the sink. Errors abort immediately;
// the sink is never flushed on a failed run.
func (r *Runner) Run(ctx context.Context, src Source, sink Sink) (*Result, error) {
	r.log.Println("START pass 1 of loading the table")
	builder := forest.NewBuilder()
	header, records, err := r.passOne(ctx, src, builder)
	if err != nil {
		return nil, err
	}
	r.log.Println("END pass 1 of loading the table")

	r.log.Println("START building CA tree")
	f := builder.Build()
	trust, err := f.Propagate()
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	r.log.Println("END building CA tree")

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}

	canon := record.New(r.layout, trust)

	r.log.Println("START preparing workbook")
	names, err := canon.Header(header)
	if err != nil {
		return nil, fmt.Errorf("convert: header: %w", err)
	}
	if err := sink.WriteHeader(canon.ClassMap(), names); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	r.log.Println("END preparing workbook")

	r.log.Println("START pass 2 of loading the table")
	if err := r.passTwo(ctx, src, canon, sink); err != nil {
		return nil, err
	}
	r.log.Println("END pass 2 of loading the table")

	r.log.Println("START saving workbook")
	if err := sink.Flush(); err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	r.log.Println("END saving workbook")

	return &Result{
		Stats:  Stats{Records: records, Roots: len(f.RootIDs())},
		Forest: f,
		Trust:  trust,
	}, nil
}

// passOne streams the export into the hierarchy builder.
func (r *Runner) passOne(ctx context.Context, src Source, builder *forest.Builder) ([]string, int, error) {
	stream, err := src()
	if err != nil {
		return nil, 0, fmt.Errorf("convert: %w", err)
	}
	defer stream.Close()

	rd := source.NewReader(stream)
	header, err := rd.Header()
	if err != nil {
		return nil, 0, fmt.Errorf("convert: %w", err)
	}

	records := 0
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return header, records, nil
		}
		if err != nil {
			return nil, 0, fmt.Errorf("convert: %w", err)
		}

		records++
		if records%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, fmt.Errorf("convert: %w", err)
			}
		}

		if err := r.addRecord(builder, rec); err != nil {
			return nil, 0, fmt.Errorf("convert: record %d (line %d): %w", records, rec.Line, err)
		}
	}
}

// addRecord registers one raw record with the builder. Only roots carry
// direct trust; every other node starts unknown and inherits during the
// propagation walk.
func (r *Runner) addRecord(builder *forest.Builder, rec source.Record) error {
	if len(rec.Fields) != r.layout.Width {
		return fmt.Errorf("%w: got %d columns, want %d for the %s layout",
			record.ErrColumnCount, len(rec.Fields), r.layout.Width, r.layout.Version)
	}

	statuses, err := r.layout.Statuses(rec.Fields)
	if err != nil {
		return err
	}

	direct := forest.TrustUnknown
	isRoot := r.layout.IsRoot(rec.Fields)
	if isRoot {
		direct = forest.TrustFromIncluded(schema.AnyIncluded(statuses))
	}

	builder.Add(r.layout.ID(rec.Fields), r.layout.ParentID(rec.Fields), isRoot, direct)
	return nil
}

// passTwo re-reads the export and emits canonical rows into the sink.
func (r *Runner) passTwo(ctx context.Context, src Source, canon *record.Canonicalizer, sink Sink) error {
	stream, err := src()
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	defer stream.Close()

	rd := source.NewReader(stream)
	if _, err := rd.Header(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	records := 0
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("convert: %w", err)
		}

		records++
		if records%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("convert: %w", err)
			}
		}

		cells, err := canon.Row(rec.Fields)
		if err != nil {
			return fmt.Errorf("convert: record %d (line %d): %w", records, rec.Line, err)
		}
		if err := sink.WriteRow(cells); err != nil {
			return fmt.Errorf("convert: %w", err)
		}
	}
}
