// Package viz provides the interactive terminal view of the wave grid.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: grid, control panel and brightness plot
//   - [RenderGrid]: paints cells in the active color scaled by intensity
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Play/Pause
//	R     - Clear the grid and resume
//	←/→   - Change the tick interval within the configured range
//	S     - Single step while paused
//	T     - Cycle color themes
//	P     - Save a PNG snapshot
//	G     - Toggle GIF recording
//	Y     - Copy the frame to the clipboard as text
//	?     - Show help overlay
//
// # Timing
//
// Ticks are scheduled with tea.Tick. Each [TickMsg] remembers the
// simulator generation it was armed under; pausing, resuming or changing
// speed bumps the generation, so the old timer's message is discarded when
// it arrives and only the newly armed timer advances the grid.
package viz
