// Package report renders a kanji analysis.
//
// This package contains writers for different output formats:
//   - TextWriter: the canonical plain-text report (default)
//   - JSONWriter: structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for documentation
//
// Writers implement the Writer interface, so the extract command picks one
// from its flags and never depends on the concrete format.
package report
