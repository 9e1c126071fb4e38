// Package app wires configuration, logging and the log workspace together
// for each logparse command.
//
// # Overview
//
// Every command opens a session: it loads config.toml, builds the diagnostic
// logger from the [logging] table and creates a workspace.Workspace with the
// configured batch sizes. The session logger is shut down when the command
// returns.
//
// # Commands
//
//   - Run: starts the Bubble Tea viewer with the given files open
//   - Query: reconstructs one file, applies search, sort, reverse and limit,
//     and writes the result as text, JSON or YAML
//   - Types: reconstructs several files into one workspace and prints the
//     shared type registry in priority order
//
// # Error Handling
//
// Fatal errors are returned: an invalid config, an unreadable file, a bad
// sort mode or output format. A file that fails part way still produces
// output for the entries recovered, and the error wrapping
// workspace.ErrPartialRead is returned afterwards so the CLI exits non-zero.
//
// # Logging
//
// The logger is github.com/lixenwraith/log. Output "file" (the default)
// writes to ~/.local/state/logparse; "stderr" and "none" are also accepted.
package app
