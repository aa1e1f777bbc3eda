// Package app is the composition root for the mcmap command.
//
// # Overview
//
// New loads configuration, builds the shared logrus logger, opens the
// feature flag store and wires the package filesystem and renderer. Each
// exported method backs one CLI command and writes its output to the
// configured writer.
//
// # Components
//
//   - app.go: wiring plus the one-shot commands (Info, Pins, Migrate,
//     RemovePins, AddPin, Check, Create, FlagsList, FlagsSet)
//   - watch.go: Watch, a loop that re-reads a package on a fixed cadence
//
// # Data Flow
//
//	┌──────────────┐
//	│   New()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()     Read ~/.config/mcmap/config.toml
//	       ├─────> cfg.NewLogger()   Shared logrus logger
//	       ├─────> flags.OpenFile()  Feature flag store
//	       └─────> pkgfs.New()       Package reader/writer
//
//	Editing command:
//	┌─────────────────────────────────────────┐
//	│ session.Open()   pkgfs.Read + decode    │
//	│  ├─> session.Update()  edit a copy      │
//	│  └─> session.Save()    atomic swap      │
//	└─────────────────────────────────────────┘
//
// # Watch Behavior
//
// Watch re-reads the package every interval (default 2 seconds) and prints
// the summary and integrity report when they differ from the previous
// output. Consecutive read failures double the wait up to 30 seconds; a
// successful read resets it. Cancelling the context stops the loop and
// returns nil.
//
// # Error Handling
//
// Commands return wrapped errors and never exit the process. Check returns
// the multierror from document.File.Check so the CLI exits non-zero when a
// package has problems.
package app
