// Package model defines the data structures shared by the kanjikit commands.
//
// This package contains the following main types:
//   - VocabularyEntry / Vocabulary: the decoded vocabulary dataset
//   - KanjiAnalysis / Compound: the result of a kanji extraction run
//   - RemovalResult: the outcome of one background removal
//   - Run: a row of the optional run history
//
// The types live in their own package so that the extraction, imaging,
// report and database packages can share them without import cycles.
package model
