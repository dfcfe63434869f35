package model

// Compound is one occurrence of two or more consecutive kanji inside an
// entry's Japanese text, together with the owning entry's gloss and id.
// Compounds are never deduplicated.
type Compound struct {
	// Text is the run of kanji, e.g. "図書館".
	Text string `json:"compound"`

	// English is the gloss of the entry the compound was found in.
	English string `json:"english"`

	// ID is the id of the entry the compound was found in.
	ID int `json:"id"`
}

// KanjiAnalysis is the result of scanning a vocabulary for kanji.
type KanjiAnalysis struct {
	// Source is the path of the vocabulary file that was analyzed.
	// Empty when the vocabulary did not come from a file.
	Source string `json:"source,omitempty"`

	// Kanji holds every distinct kanji in strictly ascending code-point order.
	Kanji []rune `json:"-"`

	// Compounds holds every compound occurrence in entry-then-match order.
	Compounds []Compound `json:"compounds"`
}

// UniqueCount returns the number of distinct kanji.
func (a *KanjiAnalysis) UniqueCount() int {
	return len(a.Kanji)
}

// KanjiList returns the distinct kanji concatenated in ascending order.
func (a *KanjiAnalysis) KanjiList() string {
	return string(a.Kanji)
}

// KanjiStrings returns the distinct kanji as one-character strings.
func (a *KanjiAnalysis) KanjiStrings() []string {
	out := make([]string, len(a.Kanji))
	for i, r := range a.Kanji {
		out[i] = string(r)
	}
	return out
}
