package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/kanjikit/internal/model"
)

// TextWriter outputs the canonical plain-text report:
//
//	Total Unique Kanji: 3
//	Kanji list: 図書館
//
//	Compounds found (Context):
//	ID:    1 | English: book            | Compound: 図書館
//
// The output depends only on the analysis, so the same input always renders
// to the same bytes.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the analysis in plain-text format.
func (w *TextWriter) Write(analysis *model.KanjiAnalysis) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Total Unique Kanji: %d\n", analysis.UniqueCount())
	fmt.Fprintf(&sb, "Kanji list: %s\n\n", analysis.KanjiList())
	sb.WriteString("Compounds found (Context):\n")
	for _, c := range analysis.Compounds {
		sb.WriteString(FormatCompound(c))
		sb.WriteString("\n")
	}

	return io.WriteString(w.output, sb.String())
}

// FormatCompound renders one compound line without the trailing newline.
// Field widths count characters, not bytes, and long values are never cut.
func FormatCompound(c model.Compound) string {
	return fmt.Sprintf("ID: %4d | English: %-15s | Compound: %s", c.ID, c.English, c.Text)
}
