package ipc

import (
	"bytes"
	"fmt"

	"github.com/colvex/colvex/array"
	"github.com/colvex/colvex/datatype"
	"github.com/colvex/colvex/errs"
	"github.com/colvex/colvex/format"
	"github.com/colvex/colvex/internal/options"
)

// Record is one decoded record batch: a column per schema field, all of the
// same length. Columns skipped by projection are nil.
type Record struct {
	schema  *datatype.Schema
	columns []array.Array
	numRows int
}

// Schema returns the schema the record was decoded against.
func (r *Record) Schema() *datatype.Schema { return r.schema }

// NumCols returns the number of schema fields, including unprojected ones.
func (r *Record) NumCols() int { return len(r.columns) }

// NumRows returns the row count shared by all decoded columns.
func (r *Record) NumRows() int { return r.numRows }

// Column returns the i-th column, or nil if it was excluded by projection.
func (r *Record) Column(i int) array.Array { return r.columns[i] }

type readerConfig struct {
	projection map[int]bool // nil means every column
}

// ReaderOption configures ReadRecord.
type ReaderOption = options.Option[*readerConfig]

// WithProjection restricts decoding to the given top-level column indexes.
// Excluded columns are skipped without touching the body and come back nil.
func WithProjection(cols ...int) ReaderOption {
	return options.New(func(cfg *readerConfig) error {
		cfg.projection = make(map[int]bool, len(cols))
		for _, c := range cols {
			if c < 0 {
				return fmt.Errorf("%w: negative projection index %d", errs.ErrSchemaMismatch, c)
			}
			cfg.projection[c] = true
		}

		return nil
	})
}

// ReadRecord decodes one record batch message against the schema. Dictionary
// columns resolve their values through dicts; pass an empty registry when the
// schema has none. Both metadata queues must be consumed exactly, and every
// decoded top-level column must report the same length.
func ReadRecord(msg *Message, schema *datatype.Schema, dicts *Dictionaries, opts ...ReaderOption) (*Record, error) {
	if kind := msg.Header.Flag.GetKind(); kind != format.KindRecordBatch {
		return nil, fmt.Errorf("%w: expected record batch, got %s", errs.ErrInvalidMessageKind, kind)
	}

	cfg := &readerConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	for c := range cfg.projection {
		if c >= schema.NumFields() {
			return nil, fmt.Errorf("%w: projection index %d, schema has %d fields",
				errs.ErrSchemaMismatch, c, schema.NumFields())
		}
	}

	ctx, err := newDecodeContext(msg, dicts, bytes.NewReader(msg.Body), 0)
	if err != nil {
		return nil, err
	}

	columns := make([]array.Array, schema.NumFields())
	for i, f := range schema.Fields() {
		if cfg.projection != nil && !cfg.projection[i] {
			if err := skip(ctx, f.Type); err != nil {
				return nil, err
			}

			continue
		}

		columns[i], err = read(ctx, f)
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.cur.drained(); err != nil {
		return nil, err
	}

	numRows := -1
	for _, col := range columns {
		if col == nil {
			continue
		}
		if numRows == -1 {
			numRows = col.Len()
		} else if col.Len() != numRows {
			return nil, fmt.Errorf("%w: columns of %d and %d rows in one record",
				errs.ErrLengthMismatch, numRows, col.Len())
		}
	}
	if numRows == -1 {
		numRows = 0
	}

	return &Record{schema: schema, columns: columns, numRows: numRows}, nil
}
