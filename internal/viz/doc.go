// Package viz provides the terminal user interface for sorting runs.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [NewInteractiveApp]: algorithm menu and run parameters
//   - [Model]: live view of one session with bars, metrics and the step log
//   - [CompareModel]: two sessions side by side on identical arrays
//   - [Printer]: colored step lines for headless runs
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume run
//	]/L   - Step forward in the log
//	[/H   - Step back in the log
//	N     - Single-step the paused run
//	R     - Reset to the original array
//	C     - Clear the log
//	E     - Export the log
//	X     - Cancel the run
//	S     - Start or restart
//	T     - Cycle color themes
//	?     - Show help overlay
//
// # Replay
//
// When the log cursor is behind the newest step the bars show the array as
// it was right after that step, rebuilt from the original values. The live
// board is never modified by navigation.
package viz
