package report

import (
	"fmt"
	"io"
	"strings"
)

// EscapeCSV doubles embedded quotes and wraps the field in quotes when it
// contains a quote, a comma or a newline.
func EscapeCSV(v string) string {
	v = strings.ReplaceAll(v, `"`, `""`)
	if strings.ContainsAny(v, "\",\n") {
		return `"` + v + `"`
	}
	return v
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// WriteCSV writes a header row and one row per record, joined with "\n" and
// no trailing newline.
func WriteCSV(w io.Writer, t Table) error {
	lines := make([]string, 0, len(t.Rows)+1)

	fields := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		fields[i] = EscapeCSV(h)
	}
	lines = append(lines, strings.Join(fields, ","))

	for _, row := range t.Rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = EscapeCSV(cellString(v))
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}
