package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/morispolanco/recamazon/internal/pipeline"
	"github.com/morispolanco/recamazon/internal/report"
)

//go:embed page.html
var pageTemplate string

type pageView struct {
	Labels  report.Labels
	Warning string
	Error   string
	Query   string

	Submitted bool
	Halted    bool
	Tabs      []tabView
}

type tabView struct {
	ID        string
	Title     string
	Subheader string
	Table     template.HTML
	Text      string
	Empty     string
}

func (v *pageView) setResult(result pipeline.Result) {
	v.Submitted = true
	if !result.Completed() {
		v.Halted = true
		return
	}
	for i, section := range report.Sections(result) {
		tab := tabView{
			ID:        fmt.Sprintf("tab-%d", i+1),
			Title:     section.Title,
			Subheader: section.Subheader,
		}
		switch {
		case !section.HasContent():
			tab.Empty = section.Empty
		case section.Table != nil:
			// go-pretty escapes cell text when rendering HTML.
			tab.Table = template.HTML(section.Table.RenderHTML())
		default:
			tab.Text = section.Text
		}
		v.Tabs = append(v.Tabs, tab)
	}
}

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &pageRenderer{tmpl: tmpl}, nil
}

func (p *pageRenderer) render(view pageView) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
