// Package export renders expense lists as CSV text and writes the download
// file. The text contract is exact: \n separators, no trailing newline,
// quoting only where RFC 4180 requires it, and empty input yields an empty
// string rather than a header-only one.
package export

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wanderlog/expenseclient/internal/storage"
)

// Cell is one named value of a row. Rows are ordered slices because the
// header falls back to the first row's column order.
type Cell struct {
	Key   string
	Value any
}

// Row is an ordered sequence of cells.
type Row []Cell

// BuildCSV produces RFC-4180 style text: a header line, then one line per
// row. Columns come from headers when supplied, otherwise from the first
// row's cell order.
func BuildCSV(rows []Row, headers []string) string {
	if len(rows) == 0 {
		return ""
	}

	columns := headers
	if len(columns) == 0 {
		for _, cell := range rows[0] {
			columns = append(columns, cell.Key)
		}
	}

	lines := make([]string, 0, len(rows)+1)

	headerFields := make([]string, len(columns))
	for i, c := range columns {
		headerFields[i] = escapeCSV(c)
	}
	lines = append(lines, strings.Join(headerFields, ","))

	for _, row := range rows {
		fields := make([]string, len(columns))
		for i, c := range columns {
			fields[i] = escapeCSV(row.value(c))
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return strings.Join(lines, "\n")
}

func (r Row) value(key string) any {
	for _, cell := range r {
		if cell.Key == key {
			return cell.Value
		}
	}
	return nil
}

// escapeCSV renders nil as the empty string and wraps fields containing
// comma, quote or newline in double quotes with internal quotes doubled.
func escapeCSV(value any) string {
	if value == nil {
		return ""
	}

	s := stringify(value)
	if strings.ContainsAny(s, "\",\n") {
		s = `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatDate renders a date as the YYYY-MM-DD HH:mm storage string in local
// time. Formatting is one-directional; the stored string is treated as an
// opaque sortable value downstream.
func FormatDate(t time.Time) string {
	return t.Format(storage.DateLayout)
}

// ExpenseRows converts expenses into rows in the export column order.
func ExpenseRows(expenses []storage.Expense) []Row {
	rows := make([]Row, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, Row{
			{Key: "id", Value: e.ID()},
			{Key: "date", Value: e.Date()},
			{Key: "category", Value: e.Category()},
			{Key: "amount", Value: e.Amount()},
			{Key: "paymentMethod", Value: e.PaymentMethod()},
			{Key: "note", Value: e.Note()},
		})
	}
	return rows
}

// WriteCSVFile writes the CSV with a UTF-8 byte-order mark so spreadsheet
// tools keep non-ASCII text intact.
func WriteCSVFile(path, csv string) error {
	return os.WriteFile(path, []byte("\ufeff"+csv), 0600)
}
