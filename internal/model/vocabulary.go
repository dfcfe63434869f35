package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	// ErrNullEntry is returned when an element of "words" is null.
	ErrNullEntry = errors.New("vocabulary entry is null")

	// ErrNullJapanese is returned when an entry has "japanese": null.
	ErrNullJapanese = errors.New(`vocabulary entry has a null "japanese" field`)
)

var jsonNull = []byte("null")

// VocabularyEntry is a single word of the vocabulary dataset.
// Entries are read-only once decoded.
type VocabularyEntry struct {
	// ID is the numeric identifier of the word.
	ID int `json:"id"`

	// English is the English gloss of the word.
	English string `json:"english"`

	// Japanese is the Japanese rendering. It may mix kanji, kana and
	// latin characters. A missing field decodes to the empty string;
	// an explicit null is an error.
	Japanese string `json:"japanese"`

	// Category groups words for quiz generation. Optional.
	Category string `json:"category,omitempty"`

	// Difficulty ranges from 1 to 3 in the game dataset. Optional.
	Difficulty int `json:"difficulty,omitempty"`

	hasID      bool
	hasEnglish bool
}

// HasID reports whether the "id" key was present in the decoded object.
func (e VocabularyEntry) HasID() bool {
	return e.hasID
}

// HasEnglish reports whether the "english" key was present in the decoded object.
func (e VocabularyEntry) HasEnglish() bool {
	return e.hasEnglish
}

// NewVocabularyEntry builds a fully populated entry, as if decoded from an
// object carrying both "id" and "english".
func NewVocabularyEntry(id int, english, japanese string) VocabularyEntry {
	return VocabularyEntry{
		ID:         id,
		English:    english,
		Japanese:   japanese,
		hasID:      true,
		hasEnglish: true,
	}
}

// UnmarshalJSON decodes an entry and records which optional keys were present.
// A null "id" or "english" counts as absent. A null entry or a null
// "japanese" is rejected.
func (e *VocabularyEntry) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return ErrNullEntry
	}

	var raw struct {
		ID         *int            `json:"id"`
		English    *string         `json:"english"`
		Japanese   json.RawMessage `json:"japanese"`
		Category   string          `json:"category"`
		Difficulty int             `json:"difficulty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = VocabularyEntry{
		Category:   raw.Category,
		Difficulty: raw.Difficulty,
	}
	if raw.ID != nil {
		e.ID = *raw.ID
		e.hasID = true
	}
	if raw.English != nil {
		e.English = *raw.English
		e.hasEnglish = true
	}
	if raw.Japanese != nil {
		if bytes.Equal(raw.Japanese, jsonNull) {
			return ErrNullJapanese
		}
		if err := json.Unmarshal(raw.Japanese, &e.Japanese); err != nil {
			return err
		}
	}
	return nil
}

// Vocabulary is the top-level vocabulary document: {"words": [...]}.
type Vocabulary struct {
	// Words holds the entries in file order.
	Words []VocabularyEntry `json:"words"`
}
