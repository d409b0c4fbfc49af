// Package logtail reads the tail of the gamedex log file.
//
// The TUI owns the terminal while it runs, so its log goes to a file
// (config log_file). The logs command uses Read to print the most recent
// lines without loading the whole file: a ring buffer of maxLines entries is
// filled in a single pass, so memory stays proportional to the request rather
// than to the file.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	lines = logtail.Match(lines, "load failed")
//
// A log that does not exist yet reads as empty.
package logtail
