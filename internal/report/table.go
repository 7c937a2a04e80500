package report

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/morispolanco/recamazon/internal/parse"
)

// ValueColumn holds records that are not JSON objects.
const ValueColumn = "value"

// textCellWidth wraps long cells in terminal output.
const textCellWidth = 60

// Table is a header row plus string cells. Keys holds the raw field names
// behind Headers.
type Table struct {
	Keys    []string
	Headers []string
	Rows    [][]string
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// ItemsTable lists discovered item URLs.
func ItemsTable(items []parse.ItemReference) Table {
	t := Table{Keys: []string{"url"}, Headers: []string{"URL"}}
	for _, item := range items {
		t.Rows = append(t.Rows, []string{item.URL})
	}
	return t
}

// RecordsTable lays records out with one column per field, in first-seen
// order across all records. Records that are not objects land in a "value"
// column.
func RecordsTable(records []parse.Record) Table {
	var keys []string
	index := map[string]int{}
	addKey := func(key string) int {
		if i, ok := index[key]; ok {
			return i
		}
		index[key] = len(keys)
		keys = append(keys, key)
		return index[key]
	}

	cells := make([]map[int]string, 0, len(records))
	for _, record := range records {
		row := map[int]string{}
		parsed := gjson.ParseBytes(record)
		if parsed.IsObject() {
			parsed.ForEach(func(key, value gjson.Result) bool {
				row[addKey(key.String())] = cellText(value)
				return true
			})
		} else {
			row[addKey(ValueColumn)] = cellText(parsed)
		}
		cells = append(cells, row)
	}

	t := Table{Keys: keys, Headers: make([]string, len(keys))}
	for i, key := range keys {
		t.Headers[i] = headerText(key)
	}
	for _, row := range cells {
		values := make([]string, len(keys))
		for i, value := range row {
			values[i] = value
		}
		t.Rows = append(t.Rows, values)
	}
	return t
}

func cellText(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return strings.TrimSpace(value.Str)
	case gjson.Null:
		return ""
	default:
		return strings.TrimSpace(value.Raw)
	}
}

// headerText turns "review_text" or "reviewText" into "Review Text".
func headerText(key string) string {
	var b strings.Builder
	var prev rune
	for i, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case i > 0 && r >= 'A' && r <= 'Z' && prev >= 'a' && prev <= 'z':
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	header := strings.Join(strings.Fields(b.String()), " ")
	if header == "" {
		return key
	}
	if strings.ToUpper(header) == header && len(header) <= 4 {
		// Acronyms like ISBN or URL stay as written.
		return header
	}
	return cases.Title(language.English).String(header)
}

func (t Table) writer() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range t.Rows {
		r := make(table.Row, len(t.Headers))
		for i := range t.Headers {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}
	return tw
}

// RenderText draws the table with rounded borders, wrapping wide cells.
func (t Table) RenderText() string {
	if len(t.Headers) == 0 {
		return ""
	}
	tw := t.writer()
	configs := make([]table.ColumnConfig, 0, len(t.Headers))
	for i := range t.Headers {
		configs = append(configs, table.ColumnConfig{
			Number:           i + 1,
			Align:            text.AlignLeft,
			AlignHeader:      text.AlignLeft,
			WidthMax:         textCellWidth,
			WidthMaxEnforcer: text.WrapSoft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// RenderMarkdown draws the table as a GitHub-flavored Markdown table.
func (t Table) RenderMarkdown() string {
	if len(t.Headers) == 0 {
		return ""
	}
	return t.writer().RenderMarkdown()
}

// RenderHTML draws the table as an escaped HTML table.
func (t Table) RenderHTML() string {
	if len(t.Headers) == 0 {
		return ""
	}
	tw := t.writer()
	tw.Style().HTML.CSSClass = "results-table"
	tw.Style().HTML.EscapeText = true
	return tw.RenderHTML()
}
