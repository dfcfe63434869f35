// Package database provides SQLite-based run history for kanjikit.
//
// Recording is opt-in. When enabled, every extract or removebg run appends
// one row holding the tool name, the input and output paths, a SHA3-256
// digest of the written output and a short summary. The history command
// reads the rows back, newest first.
//
// The database is a single file (history.db) opened through
// modernc.org/sqlite, which needs no cgo.
package database
