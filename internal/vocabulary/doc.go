// Package vocabulary loads the vocabulary dataset used by the kanji extractor.
//
// The dataset is a UTF-8 JSON document shaped as
//
//	{"words": [{"id": 1, "english": "book", "japanese": "本"}, ...]}
//
// A leading UTF-8 byte order mark is tolerated. Any other deviation (missing
// file, invalid UTF-8, invalid JSON, missing "words", null entries) is
// returned as an error; nothing is repaired.
package vocabulary
