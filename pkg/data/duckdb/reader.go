// Package duckdb loads the half-hourly load dataset through DuckDB,
// which also covers CSV and parquet files via table functions.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/peter-kozarec/loadcast/pkg/common"
)

type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

// LoadRecords streams rows of (date, date_time, value, week_num) for
// the requested range, ordered by date_time, into handler.
func (r *Reader) LoadRecords(ctx context.Context, table string, from, to time.Time, handler func(record common.LoadRecord) error) error {

	query := fmt.Sprintf(`SELECT date, date_time, value, week_num FROM %s WHERE date_time BETWEEN ? AND ? ORDER BY date_time`, table)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var record common.LoadRecord
		if err := rows.Scan(&record.Date, &record.DateTime, &record.Value, &record.WeekNum); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		if err := handler(record); err != nil {
			return fmt.Errorf("error processing record: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}

// LoadSeries collects the range into a validated series.
func (r *Reader) LoadSeries(ctx context.Context, table string, from, to time.Time) (common.Series, error) {
	var records []common.LoadRecord
	if err := r.LoadRecords(ctx, table, from, to, func(record common.LoadRecord) error {
		records = append(records, record)
		return nil
	}); err != nil {
		return common.Series{}, err
	}
	return common.FromRecords(records)
}
