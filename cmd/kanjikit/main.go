// Package main provides the entry point for the kanjikit CLI.
//
// kanjikit bundles two asset-preparation tools for a Japanese vocabulary
// game: a kanji extractor that reports the unique kanji and compounds in a
// vocabulary dataset, and a background remover that turns near-white pixels
// transparent and crops images to their content.
//
// Usage:
//
//	kanjikit extract
//	kanjikit removebg <input> <output>
//	kanjikit removebg --out-dir <dir> <input>...
//
// See --help for all available options.
package main

// main is the entry point for kanjikit.
func main() {
	Execute()
}
