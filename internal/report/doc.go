// Package report renders pipeline results for people: catalog-specific
// titles and empty-state wording, record tables with one column per field,
// and text, Markdown, HTML, and JSON renderings shared by the CLI and the
// web UI.
package report
