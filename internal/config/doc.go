// Package config loads the logparse configuration file.
//
// # Overview
//
// The configuration controls how much of a log is handed to the viewer at a
// time, the sort mode a freshly opened log starts in, the scanner's line
// length limit, and where logparse writes its own diagnostic log. Everything
// has a default, so logparse runs without a config file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided (the --config flag), use it
//  2. Otherwise, use ~/.config/logparse/config.toml
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but keys are missing or blank, keep their defaults
//
// # Default Values
//
//   - initial_batch: 50 entries delivered when a log opens
//   - incremental_batch: 20 entries per "load more"
//   - default_sort: "Date"
//   - max_line_bytes: 1 MiB
//   - logging.level: info
//   - logging.output: file
//   - logging.directory: ~/.local/state/logparse
//
// # TOML Format
//
//	initial_batch = 50
//	incremental_batch = 20
//	default_sort = "Type"
//	max_line_bytes = 1048576
//
//	[logging]
//	level = "debug"
//	output = "stderr"   # none, stderr or file
//	directory = "~/.local/state/logparse"
//
// The file output keeps diagnostics off the terminal while the viewer owns
// the screen. Tilde expansion is performed on the config path and on
// logging.directory.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Out-of-range values: non-positive batch sizes or line limit, an unknown
//     sort mode (wrapping sorting.ErrInvalidMode), level, or output
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//		return fmt.Errorf("load config: %w", err)
//	}
//	ws := workspace.New(nil, logger, workspace.Options{
//		InitialBatch: cfg.InitialBatch,
//		MaxLineBytes: cfg.MaxLineBytes,
//	})
package config
