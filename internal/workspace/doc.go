// Package workspace tracks the logs open in a logparse session.
//
// # Overview
//
// A Workspace is the coordination point between the reconstruction engine and
// whatever presents the logs, the interactive UI or the query command. It owns
// the type registry that every open log shares and a list of
// collection.Collection values, one per opened file.
//
//	Open(path):
//	┌─────────────────────┐      ┌─────────────────────┐
//	│ logfile.ReadFile    │      │ collection.New      │
//	│   entries, types ───┼─────→│   DeliverInitial(N) │
//	└─────────────────────┘      └──────────┬──────────┘
//	                                        ↓
//	                              logs = append(logs, c)
//
// # Display Names
//
// Each log is registered under the base name of its file. When that name is
// already taken the first free name of "app.log(1)", "app.log(2)", ... is used
// instead, so a file opened twice gets two tabs.
//
// # Error Semantics
//
// Open distinguishes two failures:
//
//   - The file cannot be opened: nothing is registered and the error is
//     returned as is (errors.Is(err, fs.ErrNotExist) works for missing files).
//   - Reading fails after the file opened: the log is registered with the
//     entries recovered so far and the returned error wraps ErrPartialRead.
//
// Close rebuilds the list without the named log and reports ErrNotOpen when
// no log has that name.
//
// # Concurrency Model
//
// The log list is guarded by a sync.RWMutex. File reading happens outside the
// lock; only the name selection and append hold it. Logs returns a copy of the
// list so callers can iterate without holding the lock.
package workspace
