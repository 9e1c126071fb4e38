// Package ui provides the terminal viewer for logparse.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns a workspace.Workspace and shows
// one tab per open log. Each tab lists entry titles; expanding an entry shows
// its full text wrapped to the terminal width.
//
// # Package Structure
//
//   - model.go: Model, Options, messages and the Run function
//   - handlers.go: keyboard handling and the actions behind each binding
//   - render.go: tab bar, command bar, entry list and status line
//   - render_cache.go: wrapped entry bodies, built once per width
//   - help.go: the help overlay
//   - keys.go: key bindings
//   - theme.go: color themes and per-type title colors
//
// # Windowing
//
// Opening a log delivers the configured initial batch. Moving the cursor past
// the last delivered row asks the log for the next incremental batch; a rate
// limiter keeps a held key from delivering the whole file at once. Searching,
// sorting, reversing and collapsing all reset the window to the first batch.
//
// # Key Bindings
//
//   - j/k, pgup/pgdown, g/G: Move the cursor (moving past the end loads more)
//   - enter or space: Expand or collapse the selected entry
//   - c: Collapse every entry
//   - /: Search (text, AND(a,b) or OR(a,b)); esc clears the search
//   - s: Cycle the sort mode (Date, Type)
//   - r: Reverse the current order
//   - y: Copy the selected entry to the clipboard
//   - o: Open another file; x closes the current one
//   - tab/shift+tab: Switch logs
//   - T: Cycle theme
//   - h or ?: Help
//   - e or Ctrl+C: Exit
//
// Theme, sort mode and reverse are remembered in the prefs file.
package ui
