package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EncodeCSV renders records as comma separated text. Headers come from the
// keys of the first record, rows are joined with "\n" and the output has no
// trailing newline. See quoteField for the quoting rule.
func EncodeCSV(records []*Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}
	headers := records[0].Keys()

	var buf bytes.Buffer
	writeRow(&buf, headers)
	row := make([]string, len(headers))
	for _, rec := range records {
		for i, key := range headers {
			row[i] = FormatValue(rec.Value(key))
		}
		buf.WriteByte('\n')
		writeRow(&buf, row)
	}
	return buf.Bytes(), nil
}

func writeRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(quoteField(field))
	}
}

// quoteField wraps a field in double quotes, doubling inner quotes, only
// when it holds a comma, a quote or a line break. Everything else is
// written verbatim, leading spaces included.
func quoteField(field string) string {
	if !strings.ContainsAny(field, ",\"\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// FormatValue renders a cell value. nil renders as an empty string.
func FormatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	case time.Time:
		return value.Format(time.RFC3339)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}
