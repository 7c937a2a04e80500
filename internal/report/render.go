package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/morispolanco/recamazon/internal/parse"
	"github.com/morispolanco/recamazon/internal/pipeline"
	"github.com/morispolanco/recamazon/internal/services"
)

// Format selects an output rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat accepts text, markdown (or md), and json.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text", "table":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", services.Wrap(services.ErrValidation, "report", "format", fmt.Sprintf("unsupported format %q (want text, markdown, or json)", value), nil)
	}
}

// Section is one titled block of a result.
type Section struct {
	Title     string
	Subheader string
	// Table is nil for the recommendation section.
	Table *Table
	Text  string
	// Empty is shown instead of Table or Text when there is nothing to show.
	Empty string
}

// HasContent reports whether the section has rows or text.
func (s Section) HasContent() bool {
	if s.Table != nil {
		return !s.Table.Empty()
	}
	return s.Text != ""
}

// Sections splits a completed result into its four display blocks. A halted
// result has none.
func Sections(result pipeline.Result) []Section {
	if !result.Completed() {
		return nil
	}
	labels := LabelsFor(result.Catalog)
	items := ItemsTable(result.Items)
	details := RecordsTable(result.Details)
	reviews := RecordsTable(result.Reviews)

	recommendation := ""
	if result.HasRecommendation() {
		recommendation = result.Recommendation
	}
	return []Section{
		{Title: labels.ItemsTitle, Table: &items, Empty: labels.NoItems},
		{Title: labels.DetailsTitle, Table: &details, Empty: labels.NoDetails},
		{Title: labels.ReviewsTitle, Subheader: labels.ReviewsSubheader, Table: &reviews, Empty: labels.NoReviews},
		{Title: labels.RecommendationsTitle, Subheader: labels.RecommendationsSubheader, Text: recommendation, Empty: labels.NoRecommendations},
	}
}

// HaltMessage returns the text shown for a halted result.
func HaltMessage(result pipeline.Result) string {
	return LabelsFor(result.Catalog).NoItems
}

// Options controls Render.
type Options struct {
	Format Format
	// Color enables ANSI styling of titles in text output.
	Color bool
}

// Render writes result to w in the chosen format.
func Render(w io.Writer, result pipeline.Result, opts Options) error {
	var out string
	switch opts.Format {
	case FormatJSON:
		encoded, err := EncodeJSON(result)
		if err != nil {
			return err
		}
		out = encoded
	case FormatMarkdown:
		out = renderMarkdown(result)
	case FormatText, "":
		out = renderText(result, opts.Color)
	default:
		return services.Wrap(services.ErrValidation, "report", "render", fmt.Sprintf("unsupported format %q", opts.Format), nil)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

// EncodeJSON renders result as indented JSON with records kept verbatim.
func EncodeJSON(result pipeline.Result) (string, error) {
	if result.Items == nil {
		result.Items = []parse.ItemReference{}
	}
	if result.Details == nil {
		result.Details = []parse.Record{}
	}
	if result.Reviews == nil {
		result.Reviews = []parse.Record{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return buf.String(), nil
}

func renderText(result pipeline.Result, color bool) string {
	title := func(s string) string {
		if color {
			return text.Colors{text.Bold, text.FgCyan}.Sprint(s)
		}
		return s
	}
	subtle := func(s string) string {
		if color {
			return text.Colors{text.Faint}.Sprint(s)
		}
		return s
	}

	if !result.Completed() {
		return subtle(HaltMessage(result))
	}

	var b strings.Builder
	for i, section := range Sections(result) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(title(section.Title))
		b.WriteString("\n")
		if section.Subheader != "" {
			b.WriteString(section.Subheader)
			b.WriteString("\n")
		}
		switch {
		case !section.HasContent():
			b.WriteString(subtle(section.Empty))
		case section.Table != nil:
			b.WriteString(section.Table.RenderText())
		default:
			b.WriteString(section.Text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderMarkdown(result pipeline.Result) string {
	if !result.Completed() {
		return "_" + HaltMessage(result) + "_"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", result.Query)
	for _, section := range Sections(result) {
		fmt.Fprintf(&b, "\n## %s\n\n", section.Title)
		if section.Subheader != "" {
			fmt.Fprintf(&b, "### %s\n\n", section.Subheader)
		}
		switch {
		case !section.HasContent():
			fmt.Fprintf(&b, "_%s_\n", section.Empty)
		case section.Table != nil:
			b.WriteString(section.Table.RenderMarkdown())
			b.WriteString("\n")
		default:
			b.WriteString(section.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}
