// Package log provides the kanjikit logger, built on top of the standard
// slog package.
//
// Log output goes to stderr so that stdout stays reserved for reports and
// the removebg acknowledgment line. Logging is quiet by default (warn level)
// and switches to debug with --verbose.
//
// # Path redaction
//
// Log lines carry file paths, and logs are often pasted into issues.
// RedactHandler rewrites any string attribute (and error text) that contains
// the user's home directory so that it reads "~" instead:
//
//	logger := log.NewLogger(os.Stderr, true)
//	logger.Info("report written", "output", "/home/alice/game/kanji_analysis.txt")
//	// output=~/game/kanji_analysis.txt
package log
