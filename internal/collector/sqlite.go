package collector

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"PriceChart/internal/model"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads a date/close table from a SQLite file opened read-only.
// The date column may hold YYYY-MM-DD text or unix seconds.
type SQLiteSource struct {
	Path  string
	Table string
}

func (s *SQLiteSource) Name() string { return "sqlite" }

func (s *SQLiteSource) Load(ctx context.Context) (model.Dataset, error) {
	table := s.Table
	if table == "" {
		table = "prices"
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if _, err := os.Stat(s.Path); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	dsn, err := sqliteURI(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT date, close FROM "+table+" ORDER BY date")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	ds := model.Dataset{}
	row := 0
	for rows.Next() {
		row++
		var (
			rawDate  any
			rawClose sql.NullFloat64
		)
		if err := rows.Scan(&rawDate, &rawClose); err != nil {
			return nil, &ParseError{Line: row, Err: err}
		}
		d, err := sqliteDate(rawDate)
		if err != nil {
			return nil, &ParseError{Line: row, Column: "date", Value: fmt.Sprint(rawDate), Err: err}
		}
		if !rawClose.Valid {
			return nil, &ParseError{Line: row, Column: "close", Err: fmt.Errorf("null close")}
		}
		if rawClose.Float64 < 0 {
			return nil, &ParseError{Line: row, Column: "close", Value: fmt.Sprint(rawClose.Float64), Err: errNegativeClose}
		}
		ds = append(ds, model.Record{Date: d, Close: rawClose.Float64})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}

	log.Debug().Str("path", s.Path).Str("table", table).Int("rows", row).Msg("sqlite table read")
	return ds, nil
}

// sqliteURI builds a read-only file: URI with the path escaped, so names holding ? or #
// stay part of the path.
func sqliteURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}
	return u.String(), nil
}

func sqliteDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return model.Day(d), nil
	case int64:
		return model.Day(time.Unix(d, 0)), nil
	case string:
		return parseDateText(d)
	case []byte:
		return parseDateText(string(d))
	case nil:
		return time.Time{}, fmt.Errorf("null date")
	default:
		return time.Time{}, fmt.Errorf("unsupported date type %T", v)
	}
}

func parseDateText(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(model.DateLayout) {
		// tolerate "2020-01-03 00:00:00" style values
		s = s[:len(model.DateLayout)]
	}
	return time.Parse(model.DateLayout, s)
}
