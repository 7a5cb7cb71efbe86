package report

import (
	"encoding/csv"
	"reflect"
	"strconv"
	"strings"
)

// Delimiter selects the text encoding profile.
type Delimiter rune

const (
	// Comma is used for downloadable CSV files.
	Comma Delimiter = ','
	// Tab is used for clipboard text pasted into spreadsheets.
	Tab Delimiter = '\t'
)

// CSVFilename is the download name of the full matrix export.
const CSVFilename = "attendance_full_report.csv"

// FormatCell renders a cell: floats with one decimal, booleans as Yes/No,
// nil as the placeholder.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return Placeholder
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', 1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', 1, 32)
	case bool:
		if x {
			return "Yes"
		}
		return "No"
	case interface{ String() string }:
		return x.String()
	}
	return formatKind(reflect.ValueOf(v))
}

// formatKind renders named types such as model.Hours by their underlying kind.
func formatKind(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', 1, 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Bool:
		return FormatCell(rv.Bool())
	case reflect.String:
		return rv.String()
	case reflect.Pointer:
		if rv.IsNil() {
			return Placeholder
		}
		return FormatCell(rv.Elem().Interface())
	}
	return Placeholder
}

// FormatRow renders every cell of a row.
func FormatRow(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = FormatCell(v)
	}
	return out
}

// EncodeDelimited writes the header row and data rows separated by d, one row per line.
// Fields containing the delimiter, a quote or a line break are quoted.
func EncodeDelimited(r Report, d Delimiter) string {
	if d != Comma && d != Tab {
		d = Comma
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = rune(d)

	// Writes into a strings.Builder with a valid delimiter cannot fail.
	_ = w.Write(r.Headers)
	for _, row := range r.Rows {
		_ = w.Write(FormatRow(row))
	}
	w.Flush()

	return strings.TrimSuffix(sb.String(), "\n")
}
