package vocabulary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nao1215/kanjikit/internal/model"
)

var (
	// ErrMissingWords is returned when the document has no "words" array.
	ErrMissingWords = errors.New(`vocabulary document has no "words" field`)

	// ErrInvalidUTF8 is returned when the document is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("vocabulary document is not valid UTF-8")
)

// document mirrors the top-level JSON object. Words is a pointer so that an
// absent key can be told apart from an empty array.
type document struct {
	Words *[]model.VocabularyEntry `json:"words"`
}

// Load reads and decodes the vocabulary file at path.
func Load(path string) (*model.Vocabulary, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary: %w", err)
	}
	defer f.Close()

	v, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return v, nil
}

// Decode decodes a vocabulary document from r.
// The whole stream must be a single JSON object; trailing data is an error.
// Invalid UTF-8 is rejected up front; the decoders below would replace it
// with U+FFFD. A leading byte order mark is skipped.
func Decode(r io.Reader) (*model.Vocabulary, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, ErrInvalidUTF8
	}

	data, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Words == nil {
		return nil, ErrMissingWords
	}

	return &model.Vocabulary{Words: *doc.Words}, nil
}
