// Package kanji finds CJK ideographs and kanji compounds in vocabulary text.
//
// A character qualifies as kanji when its code point lies in U+4E00..U+9FAF,
// the CJK Unified Ideographs block without its late additions. A compound is
// a maximal run of two or more consecutive qualifying characters; runs never
// overlap and are never merged across a non-qualifying character.
package kanji
