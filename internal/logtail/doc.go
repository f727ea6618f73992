// Package logtail reads the tail of the bookrecs log file for the Logs page.
//
// # Reading
//
// Read extracts the last N lines with a ring buffer: one sequential pass,
// O(N) memory, lines returned oldest first. A missing file is not an error;
// the log simply has nothing to show yet.
//
// # Parsing
//
// The log is zerolog JSON, one object per line. Parse pulls out the level,
// timestamp, message, error, component and request_id keys and keeps every
// other key as text in Fields. Lines that are not JSON (a panic trace, for
// example) become entries with zerolog.NoLevel and the raw text as message.
//
//	entries, err := logtail.ReadEntries(path, 500)
//	if err != nil {
//		return err
//	}
//	visible := logtail.Filter(entries, zerolog.WarnLevel)
package logtail
