package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"PriceChart/internal/model"
)

// ParseError describes the first malformed row of a price file.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: column %q value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errMissingColumn = errors.New("missing required column")
	errNegativeClose = errors.New("close must be non-negative")
)

// CSVSource reads a delimited file with at least date and close columns.
type CSVSource struct {
	Path string
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Load(ctx context.Context) (model.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV parses a header row followed by date,close rows. Column order is free and
// extra columns are ignored. Any malformed row fails the whole parse.
func ParseCSV(r io.Reader) (model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return model.Dataset{}, nil
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}
	dateCol, closeCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "date":
			dateCol = i
		case "close":
			closeCol = i
		}
	}
	if dateCol < 0 {
		return nil, &ParseError{Line: 1, Column: "date", Err: errMissingColumn}
	}
	if closeCol < 0 {
		return nil, &ParseError{Line: 1, Column: "close", Err: errMissingColumn}
	}

	ds := model.Dataset{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if dateCol >= len(rec) {
			return nil, &ParseError{Line: line, Column: "date", Err: errMissingColumn}
		}
		if closeCol >= len(rec) {
			return nil, &ParseError{Line: line, Column: "close", Err: errMissingColumn}
		}
		row, perr := parseRow(rec[dateCol], rec[closeCol])
		if perr != nil {
			perr.Line = line
			return nil, perr
		}
		ds = append(ds, row)
	}
	return ds, nil
}

func parseRow(dateStr, closeStr string) (model.Record, *ParseError) {
	dateStr, closeStr = strings.TrimSpace(dateStr), strings.TrimSpace(closeStr)
	d, err := time.Parse(model.DateLayout, dateStr)
	if err != nil {
		return model.Record{}, &ParseError{Column: "date", Value: dateStr, Err: err}
	}
	c, err := parseClose(closeStr)
	if err != nil {
		return model.Record{}, &ParseError{Column: "close", Value: closeStr, Err: err}
	}
	return model.Record{Date: d, Close: c}, nil
}

// parseClose accepts plain decimal strings only; NaN, Inf and exponents are rejected.
func parseClose(s string) (float64, error) {
	if strings.ContainsAny(s, "eE") {
		return 0, fmt.Errorf("can't convert %s to decimal", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, errNegativeClose
	}
	return d.InexactFloat64(), nil
}
