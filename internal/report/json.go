package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/kanjikit/internal/model"
)

// JSONWriter outputs the analysis in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport is the serialized form of a KanjiAnalysis.
type JSONReport struct {
	// Source is the analyzed vocabulary path.
	Source string `json:"source,omitempty"`

	// TotalUniqueKanji is the number of distinct kanji.
	TotalUniqueKanji int `json:"total_unique_kanji"`

	// Kanji lists the distinct kanji in ascending code-point order.
	Kanji []string `json:"kanji"`

	// KanjiList is Kanji concatenated.
	KanjiList string `json:"kanji_list"`

	// Compounds lists every compound occurrence in input order.
	Compounds []model.Compound `json:"compounds"`
}

// NewJSONReport converts an analysis into its serialized form.
func NewJSONReport(analysis *model.KanjiAnalysis) *JSONReport {
	compounds := analysis.Compounds
	if compounds == nil {
		compounds = []model.Compound{}
	}
	return &JSONReport{
		Source:           analysis.Source,
		TotalUniqueKanji: analysis.UniqueCount(),
		Kanji:            analysis.KanjiStrings(),
		KanjiList:        analysis.KanjiList(),
		Compounds:        compounds,
	}
}

// Write outputs the analysis in JSON format.
func (w *JSONWriter) Write(analysis *model.KanjiAnalysis) (int, error) {
	return w.writeJSON(NewJSONReport(analysis))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
