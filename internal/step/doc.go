// Package step records the visible actions of a sorting run and plays them back.
//
// The package defines:
//
//   - [Step]: an immutable record of one comparison, swap, milestone or info banner
//   - [History]: the append-only sequence of steps plus a navigation cursor
//   - [Format]: the single text rendering used by the live log and by export
//   - [Replay]: rebuilds the bar values at any point of a recorded run
//
// # Cursor
//
// The cursor starts at -1 (before the first step). Recording moves it to the
// newest step; StepBack and StepForward move it without touching the sequence.
// Only ClearLog discards recorded steps.
//
// # Thread Safety
//
// History is safe for concurrent use: the run goroutine records while the UI
// navigates and renders. Observers are invoked synchronously by Record, after
// the history lock has been released.
package step
