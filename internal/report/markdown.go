package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/nao1215/kanjikit/internal/model"
)

// MarkdownWriter outputs the analysis in Markdown format.
// This format is designed for pasting into documentation and pull requests.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the analysis in Markdown format.
func (w *MarkdownWriter) Write(analysis *model.KanjiAnalysis) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, analysis)
	w.writeKanji(md, analysis)
	w.writeCompounds(md, analysis)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, analysis *model.KanjiAnalysis) {
	md.H1("Kanji Analysis")
	md.PlainText("")

	source := analysis.Source
	if source == "" {
		source = "-"
	} else {
		source = "`" + source + "`"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", source},
			{"Total Unique Kanji", strconv.Itoa(analysis.UniqueCount())},
			{"Compounds Found", strconv.Itoa(len(analysis.Compounds))},
		},
	})
	md.PlainText("")
}

// writeKanji writes the concatenated kanji list.
func (w *MarkdownWriter) writeKanji(md *markdown.Markdown, analysis *model.KanjiAnalysis) {
	md.H2("Kanji List")
	md.PlainText("")

	if analysis.UniqueCount() == 0 {
		md.Note("No kanji found in the vocabulary.")
		md.PlainText("")
		return
	}

	md.PlainText(analysis.KanjiList())
	md.PlainText("")
}

// writeCompounds writes one table row per compound occurrence.
func (w *MarkdownWriter) writeCompounds(md *markdown.Markdown, analysis *model.KanjiAnalysis) {
	md.H2("Compounds")
	md.PlainText("")

	if len(analysis.Compounds) == 0 {
		md.Note("No compounds of two or more kanji found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(analysis.Compounds))
	for i, c := range analysis.Compounds {
		rows[i] = []string{strconv.Itoa(c.ID), c.English, c.Text}
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "English", "Compound"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [kanjikit](https://github.com/nao1215/kanjikit)*")
}
