package testutil

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Result is a canned query result served by FakeConn
type Result struct {
	Columns []string
	Rows    [][]any
}

// FakeConn implements db.Conn without a server. Queries are matched against
// the Results/Errors maps by longest prefix; a Handler, when set, takes
// precedence and can dispatch on query arguments. Every query seen is
// recorded in Queries for assertions.
type FakeConn struct {
	Handler func(sql string, args ...any) (*Result, error)
	Results map[string]Result
	Errors  map[string]error
	Queries []string
}

func (c *FakeConn) resolve(sql string, args ...any) (*Result, error) {
	if c.Handler != nil {
		if res, err := c.Handler(sql, args...); res != nil || err != nil {
			return res, err
		}
	}

	var matched string
	var matchedErr error
	for prefix, err := range c.Errors {
		if strings.HasPrefix(sql, prefix) && len(prefix) > len(matched) {
			matched = prefix
			matchedErr = err
		}
	}
	if matchedErr != nil {
		return nil, matchedErr
	}

	matched = ""
	var matchedRes *Result
	for prefix, res := range c.Results {
		if strings.HasPrefix(sql, prefix) && len(prefix) > len(matched) {
			matched = prefix
			r := res
			matchedRes = &r
		}
	}
	if matchedRes != nil {
		return matchedRes, nil
	}
	return nil, fmt.Errorf("unexpected query: %s", sql)
}

// Query implements db.Conn
func (c *FakeConn) Query(_ context.Context, sql string, args ...any) (driver.Rows, error) {
	c.Queries = append(c.Queries, sql)
	res, err := c.resolve(sql, args...)
	if err != nil {
		return nil, err
	}
	return NewRows(res.Columns, res.Rows), nil
}

// QueryRow implements db.Conn
func (c *FakeConn) QueryRow(_ context.Context, sql string, args ...any) driver.Row {
	c.Queries = append(c.Queries, sql)
	res, err := c.resolve(sql, args...)
	if err != nil {
		return &FakeRow{E: err}
	}
	if len(res.Rows) == 0 {
		return &FakeRow{E: fmt.Errorf("no rows")}
	}
	return &FakeRow{Values: res.Rows[0]}
}

// Exec implements db.Conn
func (c *FakeConn) Exec(_ context.Context, sql string, args ...any) error {
	c.Queries = append(c.Queries, sql)
	_, err := c.resolve(sql, args...)
	return err
}

// Ping implements db.Conn
func (c *FakeConn) Ping(context.Context) error { return nil }

// Close implements db.Conn
func (c *FakeConn) Close() error { return nil }

// FakeRows implements the driver's Rows interface over in-memory data
type FakeRows struct {
	cols    []string
	data    [][]any
	cur     int
	iterErr error
}

// NewRows builds FakeRows from column names and row values
func NewRows(columns []string, data [][]any) *FakeRows {
	return &FakeRows{cols: columns, data: data, cur: -1}
}

// NewRowsWithErr builds FakeRows whose Err() reports the given error after
// iteration, simulating a mid-stream failure.
func NewRowsWithErr(columns []string, data [][]any, err error) *FakeRows {
	return &FakeRows{cols: columns, data: data, cur: -1, iterErr: err}
}

// Next implements driver.Rows
func (r *FakeRows) Next() bool {
	r.cur++
	return r.cur < len(r.data)
}

// Scan implements driver.Rows
func (r *FakeRows) Scan(dest ...any) error {
	if r.cur < 0 || r.cur >= len(r.data) {
		return fmt.Errorf("Scan called without Next")
	}
	row := r.data[r.cur]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d)
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("destination %d is not a pointer", i)
		}
		elem := dv.Elem()
		if row[i] == nil {
			elem.Set(reflect.Zero(elem.Type()))
			continue
		}
		sv := reflect.ValueOf(row[i])
		if !sv.Type().AssignableTo(elem.Type()) {
			if !sv.Type().ConvertibleTo(elem.Type()) {
				return fmt.Errorf("cannot scan %s into %s", sv.Type(), elem.Type())
			}
			sv = sv.Convert(elem.Type())
		}
		elem.Set(sv)
	}
	return nil
}

// ScanStruct implements driver.Rows
func (r *FakeRows) ScanStruct(any) error {
	return fmt.Errorf("ScanStruct not supported by FakeRows")
}

// ColumnTypes implements driver.Rows
func (r *FakeRows) ColumnTypes() []driver.ColumnType {
	types := make([]driver.ColumnType, len(r.cols))
	for i, name := range r.cols {
		scanType := reflect.TypeOf("")
		for _, row := range r.data {
			if i < len(row) && row[i] != nil {
				scanType = reflect.TypeOf(row[i])
				break
			}
		}
		types[i] = fakeColumnType{name: name, scanType: scanType}
	}
	return types
}

// Totals implements driver.Rows
func (r *FakeRows) Totals(...any) error {
	return fmt.Errorf("no totals in result")
}

// Columns implements driver.Rows
func (r *FakeRows) Columns() []string { return r.cols }

// Close implements driver.Rows
func (r *FakeRows) Close() error { return nil }

// Err implements driver.Rows
func (r *FakeRows) Err() error {
	if r.iterErr != nil && r.cur >= len(r.data) {
		return r.iterErr
	}
	return nil
}

type fakeColumnType struct {
	name     string
	scanType reflect.Type
}

func (t fakeColumnType) Name() string           { return t.name }
func (t fakeColumnType) Nullable() bool         { return false }
func (t fakeColumnType) ScanType() reflect.Type { return t.scanType }
func (t fakeColumnType) DatabaseTypeName() string {
	return t.scanType.String()
}

// FakeRow implements the driver's Row interface for QueryRow results
type FakeRow struct {
	Values []any
	E      error
}

// Err implements driver.Row
func (r *FakeRow) Err() error { return r.E }

// Scan implements driver.Row
func (r *FakeRow) Scan(dest ...any) error {
	if r.E != nil {
		return r.E
	}
	rows := NewRows(nil, [][]any{r.Values})
	rows.Next()
	return rows.Scan(dest...)
}

// ScanStruct implements driver.Row
func (r *FakeRow) ScanStruct(any) error {
	return fmt.Errorf("ScanStruct not supported by FakeRow")
}
