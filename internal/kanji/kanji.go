package kanji

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/nao1215/kanjikit/internal/model"
)

// Code point range of the characters counted as kanji.
const (
	// RangeStart is the first qualifying code point.
	RangeStart rune = 0x4E00

	// RangeEnd is the last qualifying code point.
	RangeEnd rune = 0x9FAF
)

// Analysis errors.
var (
	// ErrMissingID is returned when an entry containing a compound has no "id".
	ErrMissingID = errors.New(`entry has no "id"`)

	// ErrMissingEnglish is returned when an entry containing a compound has no "english".
	ErrMissingEnglish = errors.New(`entry has no "english"`)
)

// compoundPattern matches runs of two or more qualifying characters.
// Go's leftmost-first matching returns maximal, non-overlapping runs.
var compoundPattern = regexp.MustCompile(`[\x{4E00}-\x{9FAF}]{2,}`)

// IsKanji reports whether r lies in the qualifying range.
func IsKanji(r rune) bool {
	return r >= RangeStart && r <= RangeEnd
}

// UniqueKanji returns every distinct kanji found in texts, in ascending
// code-point order.
func UniqueKanji(texts ...string) []rune {
	seen := make(map[rune]struct{})
	for _, text := range texts {
		collect(seen, text)
	}
	return sortedKeys(seen)
}

// FindCompounds returns the kanji compounds of text from left to right.
// It returns nil when text contains none.
func FindCompounds(text string) []string {
	return compoundPattern.FindAllString(text, -1)
}

// Analyze scans every entry of v in a single pass.
//
// Every kanji of every entry goes into the unique set. Every compound is
// recorded with the owning entry's gloss and id, so an entry holding a
// compound must carry both "english" and "id"; otherwise Analyze stops and
// returns ErrMissingEnglish or ErrMissingID wrapped with the entry index.
// Entries without compounds are never checked.
func Analyze(v *model.Vocabulary) (*model.KanjiAnalysis, error) {
	seen := make(map[rune]struct{})
	compounds := make([]model.Compound, 0)

	for i, word := range v.Words {
		collect(seen, word.Japanese)

		for _, c := range FindCompounds(word.Japanese) {
			if !word.HasEnglish() {
				return nil, fmt.Errorf("word %d: %w", i, ErrMissingEnglish)
			}
			if !word.HasID() {
				return nil, fmt.Errorf("word %d: %w", i, ErrMissingID)
			}
			compounds = append(compounds, model.Compound{
				Text:    c,
				English: word.English,
				ID:      word.ID,
			})
		}
	}

	return &model.KanjiAnalysis{
		Kanji:     sortedKeys(seen),
		Compounds: compounds,
	}, nil
}

func collect(seen map[rune]struct{}, text string) {
	for _, r := range text {
		if IsKanji(r) {
			seen[r] = struct{}{}
		}
	}
}

func sortedKeys(set map[rune]struct{}) []rune {
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}
