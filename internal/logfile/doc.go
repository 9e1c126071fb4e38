// Package logfile reconstructs multi-line log entries from plain text files.
//
// # Overview
//
// Log files handled here are not line-delimited. A record starts at a line
// whose first ten characters look like a date ("2016-06-23", "2016/06/23",
// "23.06.2016") and continues until the next such line:
//
//	2016-06-23 10:00:00 INFO started
//	    detail line
//	    another detail
//	2016-06-23 10:00:05 ERROR failed
//
// produces two entries, the first spanning three lines.
//
// # Reading
//
// ReadFile and Read make a single forward pass with a bufio.Scanner:
//
//   - Buffer size: 64KB initial, 1MB max line (WithMaxLineBytes overrides)
//   - Memory usage: O(file size), every entry is kept
//   - No seeking and no re-reading after EOF
//
// # Boundary Rules
//
//   - A boundary line finalizes the pending lines as one entry and starts a new
//     pending run
//   - At EOF the pending run is emitted only if it begins with a boundary line
//   - Lines before the first boundary are dropped, so files without any
//     boundary produce zero entries
//   - Lines shorter than ten characters are always continuations
//   - Back-to-back boundary lines produce header-only entries
//
// Each entry's text is the original lines joined with "\n"; entry IDs count
// from zero in file order.
//
// # Error Handling
//
// ReadFile returns an error when the file cannot be opened (missing,
// permission denied). Errors during the scan (including a line longer than the
// maximum) return the entries recovered so far plus an error wrapping
// ErrPartialRead, so callers can keep the partial result and still tell the
// user.
package logfile
